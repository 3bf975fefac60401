package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the single permission class carried by every account.
type Role string

const (
	RoleBuyer Role = "BUYER"
	RoleAgent Role = "AGENT"
	RoleAdmin Role = "ADMIN"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidInput = errors.New("invalid input")

// Pipeline errors. ErrUnauthenticated and ErrForbidden are only ever turned
// into wire status codes by the central HTTP error handler.
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrRateLimited = errors.New("too many requests")

// Token verification errors. The authentication middleware collapses all of
// them to "no token present"; they never reach the client directly.
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// User models an account in the system. Exactly one role at a time.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user's role is one of the given roles. This is
// the single role-derivation function shared by the route gate and the
// service-level checks, so the two enforcement layers cannot disagree.
func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// NormalizeEmail lowercases and trims an email for case-insensitive
// comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TokenClaims is the verified content of a token: the subject (email), the
// validity window, and any informational extra claims. Extra claims are never
// authoritative; the per-request role always comes from a fresh user lookup.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}
