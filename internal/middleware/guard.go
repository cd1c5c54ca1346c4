// Package middleware provides the HTTP middleware chain: the route guard,
// request logging and request metrics.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// userIDKey is the context key for the authenticated user ID.
	userIDKey contextKey = "user_id"
	// roleKey is the context key for the resolved role.
	roleKey contextKey = "role"
)

// UserID extracts the authenticated user ID from the context.
// Returns empty string if the request is unauthenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RoleFrom extracts the resolved role from the context, defaulting to
// viewer when absent.
func RoleFrom(ctx context.Context) models.Role {
	if role, ok := ctx.Value(roleKey).(models.Role); ok {
		return role
	}
	return models.RoleViewer
}

// Decision is the route guard's verdict for one request.
type Decision int

const (
	// Allow lets the request through to its handler.
	Allow Decision = iota
	// RedirectLogin sends the caller to the login page.
	RedirectLogin
	// RedirectDashboard sends the caller to the dashboard home.
	RedirectDashboard
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// adminPrefixes are the admin-only subset of the protected area.
var adminPrefixes = []string{
	"/dashboard/editions",
	"/dashboard/tribes",
	"/dashboard/sectors",
}

// Decide applies the guard matrix to a request path:
//
//   - no session + protected path      → login
//   - session + login page             → dashboard home
//   - session + site root              → dashboard home
//   - session + admin path, not admin  → dashboard home
//   - otherwise                        → allow
func Decide(path string, authenticated bool, role models.Role) Decision {
	if !authenticated {
		if strings.HasPrefix(path, dashboardPath) {
			return RedirectLogin
		}
		return Allow
	}

	if path == loginPath || path == "/" {
		return RedirectDashboard
	}

	if isAdminPath(path) && role != models.RoleAdmin {
		return RedirectDashboard
	}

	return Allow
}

func isAdminPath(path string) bool {
	for _, prefix := range adminPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Guard returns the route guard middleware. It resolves the session from
// the cookie and the role from the profile table, stores both in the
// request context, and redirects according to Decide. Role resolution
// failures degrade to viewer rather than erroring the request.
func Guard(sessions *auth.SessionManager, roles *auth.RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID string
				role   = models.RoleViewer
			)
			if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
				if claims, err := sessions.Verify(cookie.Value); err == nil {
					userID = claims.UserID
					role = roles.Resolve(r.Context(), userID)
				}
			}

			switch Decide(r.URL.Path, userID != "", role) {
			case RedirectLogin:
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			case RedirectDashboard:
				http.Redirect(w, r, dashboardPath, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
