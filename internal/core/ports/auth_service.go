package ports

import (
	"context"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService verifies credentials and mints session tokens.
//
// Login must not reveal whether the email exists: unknown email and wrong
// password both fail with domain.ErrInvalidCredentials.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	RegisterBuyer(ctx context.Context, input RegisterInput) (*domain.User, error)
}
