package ports

import (
	"context"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// EditProfileInput carries the updatable profile fields. Password is optional;
// empty means "keep the current one".
type EditProfileInput struct {
	FirstName string
	LastName  string
	Password  string
}

// UserService owns profile maintenance and agent administration.
type UserService interface {
	EditProfile(ctx context.Context, actor *domain.User, input EditProfileInput) (*domain.User, error)
	ListAgents(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	CreateAgent(ctx context.Context, actor *domain.User, input RegisterInput) (*domain.User, error)
	DeleteUserByEmail(ctx context.Context, actor *domain.User, email string) error
}
