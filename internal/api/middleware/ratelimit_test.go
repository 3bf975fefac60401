package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// stubGate returns a fixed verdict, recording the keys it saw.
type stubGate struct {
	allowed bool
	err     error
	keys    []string
}

func (g *stubGate) Allow(_ context.Context, key string) (bool, error) {
	g.keys = append(g.keys, key)
	return g.allowed, g.err
}

func runRateLimit(t *testing.T, gate *stubGate) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return RateLimit(gate, zerolog.Nop())(func(c echo.Context) error { return nil })(c)
}

func TestRateLimit_Allowed(t *testing.T) {
	gate := &stubGate{allowed: true}
	if err := runRateLimit(t, gate); err != nil {
		t.Fatalf("allowed request: %v", err)
	}
	if len(gate.keys) != 1 || gate.keys[0] != "203.0.113.7" {
		t.Fatalf("expected gate keyed by client IP, got %v", gate.keys)
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	gate := &stubGate{allowed: false}
	if err := runRateLimit(t, gate); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestRateLimit_GateFailureFailsOpen(t *testing.T) {
	gate := &stubGate{err: errors.New("redis down")}
	if err := runRateLimit(t, gate); err != nil {
		t.Fatalf("gate failure must fail open, got %v", err)
	}
}
