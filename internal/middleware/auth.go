package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tunegen/internal/identity"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const UserContextKey = contextKey("user")

// UserID returns the authenticated subject id from the request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserContextKey).(string)
	return id, ok && id != ""
}

// Auth verifies the bearer token against the identity provider on every
// request and puts the resolved subject id into the request context.
// Verification results are never cached.
func Auth(verifier identity.Verifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, "no token provided")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			id, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrInvalidToken) {
					writeAuthError(w, "invalid token")
					return
				}
				logger.Error().Err(err).Msg("Identity provider call failed")
				writeAuthError(w, "authentication failed")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, id.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthenticated","message":"` + message + `"}`))
}
