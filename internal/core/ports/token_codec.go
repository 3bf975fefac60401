package ports

import (
	"time"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// TokenCodec issues and verifies the signed stateless tokens carried in the
// session cookie.
//
// Verify fails with exactly one of domain.ErrTokenMalformed,
// domain.ErrTokenSignatureInvalid or domain.ErrTokenExpired; callers treat
// any failure as "no token present".
type TokenCodec interface {
	Issue(subject string, extra map[string]any) (string, error)
	Verify(raw string) (*domain.TokenClaims, error)
	TTL() time.Duration
}
