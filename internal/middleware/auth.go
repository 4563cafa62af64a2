package middleware

import (
	"context"
	"net/http"
	"strings"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/utils"
)

type contextKey string

const sessionKey contextKey = "session"

// UserGetter loads the current user record so role and status changes apply immediately.
type UserGetter interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      UserGetter
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users UserGetter) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		users:      users,
	}
}

// Authenticate validates the bearer token and stores the caller's session in the context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, status, msg := m.sessionFor(r)
		if status != 0 {
			utils.Error(w, status, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireRole authenticates and then ensures the user has one of the allowed roles
func (m *AuthMiddleware) RequireRole(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, status, msg := m.sessionFor(r)
			if status != 0 {
				utils.Error(w, status, msg)
				return
			}
			if !session.HasRole(allowedRoles...) {
				utils.Error(w, http.StatusForbidden, "Forbidden: Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func (m *AuthMiddleware) sessionFor(r *http.Request) (auth.Session, int, string) {
	token, ok := bearerToken(r)
	if !ok {
		return auth.Session{}, http.StatusUnauthorized, "Authorization header required"
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		return auth.Session{}, http.StatusUnauthorized, "Invalid or expired token"
	}

	// Check database for current user status (for immediate permission updates)
	user, err := m.users.Get(r.Context(), claims.UserID)
	if err != nil {
		return auth.Session{}, http.StatusUnauthorized, "User not found"
	}
	if !user.IsActive {
		return auth.Session{}, http.StatusForbidden, "Account suspended. Please contact administrator."
	}

	return auth.Session{UserID: user.ID, Name: user.Name, Role: user.Role}, 0, ""
}

// bearerToken reads "Authorization: Bearer <token>". Websocket upgrades may pass ?token= instead.
func bearerToken(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		if t := r.URL.Query().Get("token"); t != "" {
			return t, true
		}
	}
	return "", false
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext extracts the caller's session from request context
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	return s, ok
}
