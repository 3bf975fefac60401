package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotproperties/hot-properties/internal/api/middleware"
	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
	"github.com/hotproperties/hot-properties/internal/core/service"
)

// stubAuthService returns canned results for login and registration.
type stubAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func (s *stubAuthService) RegisterBuyer(context.Context, ports.RegisterInput) (*domain.User, error) {
	return s.user, s.err
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	user := &domain.User{Email: "buyer1@mail.com", Role: domain.RoleBuyer}
	h := NewAuthHandler(&stubAuthService{token: "signed-token", user: user}, time.Hour)

	c, rec := newAuthContext(t, http.MethodPost, "/login", `{"email":"buyer1@mail.com","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := findCookie(t, rec, middleware.CookieName)
	if ck.Value != "signed-token" {
		t.Fatalf("unexpected cookie value %q", ck.Value)
	}
	if !ck.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if ck.Path != "/" {
		t.Fatalf("expected Path=/, got %q", ck.Path)
	}
	if ck.MaxAge != 3600 {
		t.Fatalf("expected Max-Age=3600, got %d", ck.MaxAge)
	}
}

func TestLogin_InvalidCredentialsPropagated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials}, time.Hour)

	c, rec := newAuthContext(t, http.MethodPost, "/login", `{"email":"buyer1@mail.com","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on failed login")
	}
}

func TestLogin_RejectsBadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	c, _ := newAuthContext(t, http.MethodPost, "/login", `{"email":"not-an-email","password":"x"}`)
	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on invalid email, got %v", err)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	c, rec := newAuthContext(t, http.MethodGet, "/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	ck := findCookie(t, rec, middleware.CookieName)
	if ck.Value != "" {
		t.Fatalf("expected empty cookie value, got %q", ck.Value)
	}
	if ck.MaxAge >= 0 {
		t.Fatalf("expected negative MaxAge (Max-Age=0 on the wire), got %d", ck.MaxAge)
	}
	if ck.Path != "/" || !ck.HttpOnly {
		t.Fatalf("deletion cookie must mirror Path and HttpOnly, got %+v", ck)
	}
}

// Logout is client-side only: a token captured before logout still verifies
// until its natural expiry.
func TestLogout_DoesNotRevokeToken(t *testing.T) {
	tokens, err := service.NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	raw, err := tokens.Issue("buyer1@mail.com", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	h := NewAuthHandler(&stubAuthService{}, time.Hour)
	c, _ := newAuthContext(t, http.MethodGet, "/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	claims, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("token must remain valid after logout, got %v", err)
	}
	if claims.Subject != "buyer1@mail.com" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestRegister_Created(t *testing.T) {
	user := &domain.User{Email: "ana@mail.com", Role: domain.RoleBuyer}
	h := NewAuthHandler(&stubAuthService{user: user}, time.Hour)

	c, rec := newAuthContext(t, http.MethodPost, "/register",
		`{"first_name":"Ana","last_name":"Gomez","email":"ana@mail.com","password":"longenough"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("registration must not log the user in")
	}
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	c, _ := newAuthContext(t, http.MethodPost, "/register",
		`{"first_name":"Ana","last_name":"Gomez","email":"ana@mail.com","password":"short"}`)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on short password, got %v", err)
	}
}
