package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// TokenService signs and verifies HS256 session tokens. The signing key is
// immutable after construction and shared by all requests.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService fails when the signing key is missing. That is a startup
// configuration error; callers must abort rather than serve requests.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing key is required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{key: []byte(secret), ttl: ttl}, nil
}

// TTL returns the validity window applied to issued tokens. The session
// cookie Max-Age is derived from the same value so both expire together.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a signed token for subject. Extra claims are informational
// only; authorization never trusts them over a fresh identity lookup.
func (s *TokenService) Issue(subject string, extra map[string]any) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	for k, v := range extra {
		switch k {
		case "sub", "iat", "exp":
			// reserved
		default:
			claims[k] = v
		}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates raw, returning its claims. Failures collapse to
// the three-value token error taxonomy; no parser internals escape.
func (s *TokenService) Verify(raw string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil {
		return nil, mapTokenError(err)
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenMalformed
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	out := &domain.TokenClaims{Subject: subject, Extra: make(map[string]any)}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	for k, v := range claims {
		switch k {
		case "sub", "iat", "exp":
		default:
			out.Extra[k] = v
		}
	}
	return out, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignatureInvalid
	default:
		return domain.ErrTokenMalformed
	}
}
