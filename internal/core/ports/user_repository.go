package ports

import (
	"context"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// UserRepository is the persistence collaborator for accounts. Emails are
// compared case-insensitively; implementations store them normalized.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	DeleteByEmail(ctx context.Context, email string) error
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
