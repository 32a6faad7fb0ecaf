package middleware

import (
	"context"
	"net/http"
	"strings"

	"appointment-api/internal/auth"
	"appointment-api/internal/model"
)

type ctxKey string

const userKey ctxKey = "user"

// UserResolver maps a token subject to a live user record.
type UserResolver interface {
	UserByID(ctx context.Context, id string) (*model.User, error)
}

// UserFrom returns the authenticated user attached by Authenticate.
func UserFrom(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}

// Authenticate guards a route: it requires Authorization: Bearer <jwt>,
// verifies signature and expiry, resolves the subject against the user
// store, and attaches the sanitized user to the request context. Any
// failure short-circuits with 401. It never mutates stored state.
func Authenticate(secret string, users UserResolver, reject func(w http.ResponseWriter, status int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, http.StatusUnauthorized, "not authorized, no token")
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header || raw == "" {
				reject(w, http.StatusUnauthorized, "not authorized, no token")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				reject(w, http.StatusUnauthorized, "not authorized, token failed")
				return
			}

			u, err := users.UserByID(r.Context(), claims.UserID)
			if err != nil {
				reject(w, http.StatusUnauthorized, "not authorized, token failed")
				return
			}
			u.PasswordHash = ""

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}
