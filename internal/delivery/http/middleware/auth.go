package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"eventosia/internal/delivery/http/helpers"
	"eventosia/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// SetActor returns a context with the authenticated user id and role set.
func SetActor(ctx context.Context, userID int64, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RoleFromContext returns the authenticated user's role from the context, if present.
func RoleFromContext(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets
// the user id and role in the request context. If the token is missing or
// invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado: Token no proporcionado")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado: formato de autorización inválido")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado: Token no proporcionado")
				return
			}
			userID, role, err := verifier.Verify(token)
			if err != nil {
				helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado: Token inválido o expirado")
				return
			}
			r = r.WithContext(SetActor(r.Context(), userID, role))
			next(w, r)
		}
	}
}
