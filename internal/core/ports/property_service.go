package ports

import (
	"context"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// PropertyInput carries the editable fields of a listing.
type PropertyInput struct {
	Title       string
	Description string
	Location    string
	Price       float64
	SizeSqft    float64
}

// PropertyService owns listing operations. Every mutating operation takes the
// acting user explicitly and re-asserts the role requirement already enforced
// by the route gate.
type PropertyService interface {
	List(ctx context.Context, actor *domain.User, filter domain.PropertyFilter) ([]*domain.Property, error)
	View(ctx context.Context, actor *domain.User, id string) (*domain.Property, error)
	Add(ctx context.Context, actor *domain.User, input PropertyInput) (*domain.Property, error)
	Edit(ctx context.Context, actor *domain.User, id string, input PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	Manage(ctx context.Context, actor *domain.User) ([]*domain.Property, error)
	DeleteImage(ctx context.Context, actor *domain.User, propertyID, imageID string) error
}

// FavoriteService owns a buyer's saved listings.
type FavoriteService interface {
	List(ctx context.Context, actor *domain.User) ([]*domain.Property, error)
	Add(ctx context.Context, actor *domain.User, propertyID string) error
	Remove(ctx context.Context, actor *domain.User, propertyID string) error
}

// SendMessageInput carries a buyer inquiry about a property.
type SendMessageInput struct {
	PropertyID string
	Body       string
}

// MessageService owns buyer/agent messaging.
type MessageService interface {
	Send(ctx context.Context, actor *domain.User, input SendMessageInput) (*domain.Message, error)
	ListForBuyer(ctx context.Context, actor *domain.User) ([]*domain.Message, error)
	ListForAgent(ctx context.Context, actor *domain.User) ([]*domain.Message, error)
	View(ctx context.Context, actor *domain.User, id string) (*domain.Message, error)
	Reply(ctx context.Context, actor *domain.User, id, body string) (*domain.Message, error)
}
