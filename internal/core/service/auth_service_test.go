package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository keyed by normalized email.
type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[domain.NormalizeEmail(email)]
	return ok, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	email := domain.NormalizeEmail(user.Email)
	if _, ok := r.users[email]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	cp := *user
	cp.ID = "user-" + strconv.Itoa(r.seq)
	r.users[email] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	email := domain.NormalizeEmail(user.Email)
	if _, ok := r.users[email]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[email] = &cp
	return nil
}

func (r *stubUserRepo) DeleteByEmail(_ context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if _, ok := r.users[email]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, email)
	return nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubUserRepo) seed(t *testing.T, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := r.Create(context.Background(), &domain.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        domain.NormalizeEmail(email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func newTestAuthService(t *testing.T, repo *stubUserRepo) (*AuthService, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens
}

func TestLogin_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "buyer1@mail.com", "s3cret", domain.RoleBuyer)
	svc, tokens := newTestAuthService(t, repo)

	token, user, err := svc.Login(context.Background(), "buyer1@mail.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "buyer1@mail.com" || user.Role != domain.RoleBuyer {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "buyer1@mail.com" {
		t.Fatalf("expected subject to be the email, got %s", claims.Subject)
	}
}

func TestLogin_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "Buyer1@Mail.com", "s3cret", domain.RoleBuyer)
	svc, _ := newTestAuthService(t, repo)

	if _, _, err := svc.Login(context.Background(), "  BUYER1@mail.com ", "s3cret"); err != nil {
		t.Fatalf("expected case-insensitive login, got %v", err)
	}
}

func TestLogin_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "buyer1@mail.com", "s3cret", domain.RoleBuyer)
	svc, _ := newTestAuthService(t, repo)

	_, _, errUnknown := svc.Login(context.Background(), "nobody@mail.com", "s3cret")
	_, _, errWrong := svc.Login(context.Background(), "buyer1@mail.com", "wrong")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("failure modes must be indistinguishable: %q vs %q", errUnknown, errWrong)
	}
}

func TestLogin_BlankInput(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("blank email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "buyer1@mail.com", "  "); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("blank password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterBuyer(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	user, err := svc.RegisterBuyer(context.Background(), ports.RegisterInput{
		FirstName: "Ana",
		LastName:  "Gomez",
		Email:     "Ana@Mail.com",
		Password:  "s3cret",
	})
	if err != nil {
		t.Fatalf("RegisterBuyer: %v", err)
	}
	if user.Role != domain.RoleBuyer {
		t.Fatalf("expected BUYER role, got %s", user.Role)
	}
	if user.Email != "ana@mail.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}

	stored := repo.users["ana@mail.com"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatalf("password stored in clear")
	}
}

func TestRegisterBuyer_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "ana@mail.com", "s3cret", domain.RoleBuyer)
	svc, _ := newTestAuthService(t, repo)

	_, err := svc.RegisterBuyer(context.Background(), ports.RegisterInput{
		FirstName: "Ana",
		LastName:  "Gomez",
		Email:     "ANA@mail.com",
		Password:  "s3cret",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegisterBuyer_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	_, err := svc.RegisterBuyer(context.Background(), ports.RegisterInput{
		FirstName: "Ana",
		Email:     "ana@mail.com",
		Password:  "s3cret",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
