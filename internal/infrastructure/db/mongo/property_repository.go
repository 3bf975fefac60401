package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

const propertiesCollection = "properties"

// PropertyRepository is the MongoDB-backed listing store.
type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(propertiesCollection)}
}

type propertyDoc struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	AgentID     string                 `bson:"agent_id"`
	Title       string                 `bson:"title"`
	Description string                 `bson:"description"`
	Location    string                 `bson:"location"`
	Price       float64                `bson:"price"`
	SizeSqft    float64                `bson:"size_sqft"`
	Images      []domain.PropertyImage `bson:"images,omitempty"`
	CreatedAt   int64                  `bson:"created_at"`
}

func (d propertyDoc) toDomain() *domain.Property {
	return &domain.Property{
		ID:          d.ID.Hex(),
		AgentID:     d.AgentID,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Price:       d.Price,
		SizeSqft:    d.SizeSqft,
		Images:      d.Images,
		CreatedAt:   unixToTime(d.CreatedAt),
	}
}

func fromDomainProperty(p *domain.Property) propertyDoc {
	return propertyDoc{
		AgentID:     p.AgentID,
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Price:       p.Price,
		SizeSqft:    p.SizeSqft,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt.Unix(),
	}
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	var d propertyDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return d.toDomain(), nil
}

func (r *PropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
	query := bson.M{}
	if filter.Location != "" {
		query["location"] = filter.Location
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return r.find(ctx, query)
}

func (r *PropertyRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.Property, error) {
	return r.find(ctx, bson.M{"agent_id": agentID})
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	res, err := r.coll.InsertOne(ctx, fromDomainProperty(p))
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	doc := fromDomainProperty(p)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) find(ctx context.Context, query bson.M) ([]*domain.Property, error) {
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Property
	for cur.Next(ctx) {
		var d propertyDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
