package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

const favoritesCollection = "favorites"

// FavoriteRepository is the MongoDB-backed saved-listings store.
type FavoriteRepository struct {
	coll *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{coll: db.Collection(favoritesCollection)}
}

type favoriteDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BuyerID    string             `bson:"buyer_id"`
	PropertyID string             `bson:"property_id"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *FavoriteRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Favorite, error) {
	cur, err := r.coll.Find(ctx, bson.M{"buyer_id": buyerID})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Favorite
	for cur.Next(ctx) {
		var d favoriteDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		out = append(out, &domain.Favorite{
			ID:         d.ID.Hex(),
			BuyerID:    d.BuyerID,
			PropertyID: d.PropertyID,
			CreatedAt:  unixToTime(d.CreatedAt),
		})
	}
	return out, cur.Err()
}

func (r *FavoriteRepository) Exists(ctx context.Context, buyerID, propertyID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"buyer_id": buyerID, "property_id": propertyID})
	if err != nil {
		return false, fmt.Errorf("count favorites: %w", err)
	}
	return n > 0, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error) {
	doc := favoriteDoc{
		BuyerID:    f.BuyerID,
		PropertyID: f.PropertyID,
		CreatedAt:  f.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	created := *f
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, buyerID, propertyID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"buyer_id": buyerID, "property_id": propertyID})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
