package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// dummyHash is compared against when the email does not resolve, so a login
// attempt costs one bcrypt comparison whether or not the account exists.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("hot-properties-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService implements credential verification, login and registration.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login verifies the email/password pair and mints a session token. Unknown
// email and wrong password are indistinguishable to the caller: both return
// domain.ErrInvalidCredentials after a full bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.logger.Warn().Str("email", email).Msg("login failed: unknown account")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("email", email).Msg("login failed: password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	// The role claim is a snapshot for observability only. Authorization
	// re-derives the role from the repository on every request.
	token, err := s.tokens.Issue(user.Email, map[string]any{"role": string(user.Role)})
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("login successful")
	return token, user, nil
}

// RegisterBuyer creates a new buyer account. Registration always yields the
// BUYER role; agents are provisioned by an administrator.
func (s *AuthService) RegisterBuyer(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return createUser(ctx, s.users, input, domain.RoleBuyer, s.logger)
}

// createUser is shared by buyer self-registration and admin agent creation.
func createUser(ctx context.Context, users ports.UserRepository, input ports.RegisterInput, role domain.Role, logger zerolog.Logger) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Warn().Str("email", email).Msg("registration failed: email taken")
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("email", email).Str("role", string(role)).Msg("account created")
	return created, nil
}
