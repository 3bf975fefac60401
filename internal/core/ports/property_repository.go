package ports

import (
	"context"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

type PropertyRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Property, error)
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
}

type FavoriteRepository interface {
	ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Favorite, error)
	Exists(ctx context.Context, buyerID, propertyID string) (bool, error)
	Create(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error)
	Delete(ctx context.Context, buyerID, propertyID string) error
}

type MessageRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	ListBySender(ctx context.Context, senderID string) ([]*domain.Message, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Message, error)
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	Update(ctx context.Context, m *domain.Message) error
}
