package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

const messagesCollection = "messages"

// MessageRepository is the MongoDB-backed inquiry store.
type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(messagesCollection)}
}

type messageDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PropertyID string             `bson:"property_id"`
	SenderID   string             `bson:"sender_id"`
	AgentID    string             `bson:"agent_id"`
	Body       string             `bson:"body"`
	Reply      string             `bson:"reply,omitempty"`
	CreatedAt  int64              `bson:"created_at"`
	RepliedAt  int64              `bson:"replied_at,omitempty"`
}

func (d messageDoc) toDomain() *domain.Message {
	m := &domain.Message{
		ID:         d.ID.Hex(),
		PropertyID: d.PropertyID,
		SenderID:   d.SenderID,
		AgentID:    d.AgentID,
		Body:       d.Body,
		Reply:      d.Reply,
		CreatedAt:  unixToTime(d.CreatedAt),
	}
	if d.RepliedAt != 0 {
		t := time.Unix(d.RepliedAt, 0).UTC()
		m.RepliedAt = &t
	}
	return m
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	var d messageDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return d.toDomain(), nil
}

func (r *MessageRepository) ListBySender(ctx context.Context, senderID string) ([]*domain.Message, error) {
	return r.find(ctx, bson.M{"sender_id": senderID})
}

func (r *MessageRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.Message, error) {
	return r.find(ctx, bson.M{"agent_id": agentID})
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	doc := messageDoc{
		PropertyID: m.PropertyID,
		SenderID:   m.SenderID,
		AgentID:    m.AgentID,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MessageRepository) Update(ctx context.Context, m *domain.Message) error {
	oid, err := primitive.ObjectIDFromHex(m.ID)
	if err != nil {
		return domain.ErrMessageNotFound
	}

	set := bson.M{"reply": m.Reply}
	if m.RepliedAt != nil {
		set["replied_at"] = m.RepliedAt.Unix()
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) find(ctx context.Context, query bson.M) ([]*domain.Message, error) {
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Message
	for cur.Next(ctx) {
		var d messageDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
