package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// UserService implements profile maintenance and agent administration.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// EditProfile updates the acting user's names and, when given, password.
// Email and role are not editable here.
func (s *UserService) EditProfile(ctx context.Context, actor *domain.User, input ports.EditProfileInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	if f := strings.TrimSpace(input.FirstName); f != "" {
		actor.FirstName = f
	}
	if l := strings.TrimSpace(input.LastName); l != "" {
		actor.LastName = l
	}
	if p := input.Password; strings.TrimSpace(p) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		actor.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, actor); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", actor.Email).Msg("profile updated")
	return actor, nil
}

func (s *UserService) ListAgents(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.ListByRole(ctx, domain.RoleAgent)
}

// CreateAgent provisions an AGENT account. Admin only; this is the sole path
// by which a non-buyer role is assigned.
func (s *UserService) CreateAgent(ctx context.Context, actor *domain.User, input ports.RegisterInput) (*domain.User, error) {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return createUser(ctx, s.users, input, domain.RoleAgent, s.logger)
}

// DeleteUserByEmail removes an account. Admins cannot delete the account they
// are logged in with.
func (s *UserService) DeleteUserByEmail(ctx context.Context, actor *domain.User, email string) error {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}

	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidInput
	}
	if email == actor.Email {
		return domain.ErrInvalidInput
	}

	if err := s.users.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Str("deleted_by", actor.Email).Msg("account deleted")
	return nil
}
