package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// UserIDKey carries the authenticated user's ID through request contexts.
const UserIDKey contextKey = "userID"

const bearerPrefix = "Bearer "

// AuthMiddleware admits only requests carrying a valid bearer token and
// stores the token's user ID in the request context.
func (s *Service) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}

		userID, err := s.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user's ID, or the empty
// string when the request did not pass AuthMiddleware.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
