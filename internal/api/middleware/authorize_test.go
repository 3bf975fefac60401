package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

func testPolicy() []RoutePermission {
	return []RoutePermission{
		PermitAll("/login"),
		PermitAll("/register"),
		Authenticated("/dashboard"),
		Authenticated("/profile"),
		AnyRole("/properties/add", domain.RoleAgent),
		AnyRole("/properties/edit/**", domain.RoleAgent),
		AnyRole("/properties/*/images/*/delete", domain.RoleAgent),
		AnyRole("/properties/view/**", domain.RoleBuyer),
		AnyRole("/messages/agent", domain.RoleAgent),
		AnyRole("/messages/buyer", domain.RoleBuyer),
		AnyRole("/agents/**", domain.RoleAdmin),
		PermitAll("/**"),
	}
}

// decide runs Authorize for path with the given principal (nil = anonymous)
// and returns the middleware verdict.
func decide(t *testing.T, path string, user *domain.User) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		SetPrincipal(c, user)
	}

	mw := Authorize(testPolicy(), zerolog.Nop())
	return mw(func(c echo.Context) error { return nil })(c)
}

func TestAuthorize_AnonymousOnGatedRoute(t *testing.T) {
	if err := decide(t, "/dashboard", nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if err := decide(t, "/messages/agent", nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_RoleMismatch(t *testing.T) {
	buyer := &domain.User{Email: "buyer1@mail.com", Role: domain.RoleBuyer}
	agent := &domain.User{Email: "agent1@mail.com", Role: domain.RoleAgent}

	if err := decide(t, "/messages/agent", buyer); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("buyer on agent inbox: expected ErrForbidden, got %v", err)
	}
	if err := decide(t, "/messages/agent", agent); err != nil {
		t.Fatalf("agent on agent inbox: %v", err)
	}
	if err := decide(t, "/properties/add", buyer); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("buyer adding property: expected ErrForbidden, got %v", err)
	}
	if err := decide(t, "/agents/create", agent); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("agent on admin route: expected ErrForbidden, got %v", err)
	}
}

func TestAuthorize_BuyerRoutes(t *testing.T) {
	buyer := &domain.User{Email: "buyer1@mail.com", Role: domain.RoleBuyer}

	if err := decide(t, "/properties/view/42", buyer); err != nil {
		t.Fatalf("buyer viewing property: %v", err)
	}
	if err := decide(t, "/messages/buyer", buyer); err != nil {
		t.Fatalf("buyer inbox: %v", err)
	}
}

func TestAuthorize_AuthenticatedAdmitsAnyRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleAgent, domain.RoleAdmin} {
		user := &domain.User{Email: "u@mail.com", Role: role}
		if err := decide(t, "/profile", user); err != nil {
			t.Fatalf("%s on /profile: %v", role, err)
		}
	}
}

func TestAuthorize_PermitAllAndSentinel(t *testing.T) {
	if err := decide(t, "/login", nil); err != nil {
		t.Fatalf("anonymous on /login: %v", err)
	}
	// No specific rule matches: the trailing /** sentinel admits.
	if err := decide(t, "/some/unlisted/path", nil); err != nil {
		t.Fatalf("anonymous on unlisted path: %v", err)
	}
}

func TestAuthorize_FirstMatchWins(t *testing.T) {
	// /properties/view/7 matches both the buyer view rule and the sentinel;
	// the earlier, stricter rule decides.
	agent := &domain.User{Email: "agent1@mail.com", Role: domain.RoleAgent}
	if err := decide(t, "/properties/view/7", agent); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected buyer-only rule to decide, got %v", err)
	}
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/login", "/login", true},
		{"/login", "/login2", false},
		{"/login", "/login/extra", false},
		{"/properties/edit/**", "/properties/edit/42", true},
		{"/properties/edit/**", "/properties/edit/42/photos", true},
		{"/properties/edit/**", "/properties/edit", true},
		{"/properties/edit/**", "/properties/editx", false},
		{"/properties/*/images/*/delete", "/properties/1/images/2/delete", true},
		{"/properties/*/images/*/delete", "/properties/1/images/2/3/delete", false},
		{"/properties/*/images/*/delete", "/properties/1/images/delete", false},
		{"/**", "/", true},
		{"/**", "/anything/at/all", true},
		{"/health/**", "/health", true},
		{"/health/**", "/health/ready", true},
	}

	for _, tc := range cases {
		if got := matchPattern(tc.pattern, tc.path); got != tc.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func TestAllRolesRequiresEvery(t *testing.T) {
	policy := []RoutePermission{AllRoles("/dual", domain.RoleAgent, domain.RoleAdmin)}
	agent := &domain.User{Email: "agent1@mail.com", Role: domain.RoleAgent}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dual", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	SetPrincipal(c, agent)

	err := Authorize(policy, zerolog.Nop())(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("single role against AllRoles pair: expected ErrForbidden, got %v", err)
	}
}
