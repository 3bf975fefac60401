package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/api/metrics"
	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// MatchMode selects how a rule's role list is evaluated against the
// principal. Accounts carry a single role, so Any and All coincide for
// single-role rules, but the evaluator supports both for composability.
type MatchMode int

const (
	MatchAny MatchMode = iota
	MatchAll
)

// RoutePermission binds a path pattern to an access requirement. Patterns use
// "*" for exactly one segment and a trailing "**" for zero or more.
type RoutePermission struct {
	pattern       string
	permitAll     bool
	authenticated bool
	roles         []domain.Role
	mode          MatchMode
}

// PermitAll admits every request, authenticated or not.
func PermitAll(pattern string) RoutePermission {
	return RoutePermission{pattern: pattern, permitAll: true}
}

// Authenticated admits any non-anonymous principal regardless of role.
func Authenticated(pattern string) RoutePermission {
	return RoutePermission{pattern: pattern, authenticated: true}
}

// AnyRole admits principals whose role equals one of roles.
func AnyRole(pattern string, roles ...domain.Role) RoutePermission {
	return RoutePermission{pattern: pattern, roles: roles, mode: MatchAny}
}

// AllRoles admits principals satisfying every listed role.
func AllRoles(pattern string, roles ...domain.Role) RoutePermission {
	return RoutePermission{pattern: pattern, roles: roles, mode: MatchAll}
}

// Authorize evaluates the permission table top to bottom; the first rule
// whose pattern matches the request path decides. Declare specific patterns
// before broad ones and end the table with PermitAll("/**") so every path
// resolves. An anonymous principal failing a rule yields
// domain.ErrUnauthenticated; an authenticated one with the wrong role yields
// domain.ErrForbidden. Status codes are assigned centrally, never here.
func Authorize(policy []RoutePermission, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			rule, ok := firstMatch(policy, path)
			if !ok || rule.permitAll {
				metrics.AuthzDecisionsTotal.WithLabelValues("permit").Inc()
				return next(c)
			}

			user, authed := CurrentUser(c)
			if !authed {
				metrics.AuthzDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				log.Info().Str("path", path).Str("pattern", rule.pattern).Msg("anonymous request to gated route")
				return domain.ErrUnauthenticated
			}

			if rule.authenticated || rule.satisfiedBy(user) {
				metrics.AuthzDecisionsTotal.WithLabelValues("permit").Inc()
				return next(c)
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("forbidden").Inc()
			log.Info().Str("path", path).Str("pattern", rule.pattern).Str("email", user.Email).Str("role", string(user.Role)).Msg("role mismatch on gated route")
			return domain.ErrForbidden
		}
	}
}

func firstMatch(policy []RoutePermission, path string) (RoutePermission, bool) {
	for _, rule := range policy {
		if matchPattern(rule.pattern, path) {
			return rule, true
		}
	}
	return RoutePermission{}, false
}

func (r RoutePermission) satisfiedBy(user *domain.User) bool {
	if r.mode == MatchAll {
		for _, role := range r.roles {
			if !user.HasRole(role) {
				return false
			}
		}
		return len(r.roles) > 0
	}
	return user.HasRole(r.roles...)
}

// matchPattern matches path against pattern segment by segment. "*" consumes
// exactly one segment; a trailing "**" consumes the remainder, including
// nothing. "/**" therefore matches every path.
func matchPattern(pattern, path string) bool {
	ps := splitPath(pattern)
	hs := splitPath(path)

	for i, seg := range ps {
		if seg == "**" {
			return i == len(ps)-1
		}
		if i >= len(hs) {
			return false
		}
		if seg != "*" && seg != hs[i] {
			return false
		}
	}
	return len(ps) == len(hs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
