package middleware

import (
	"net/http"
	"strings"

	"github.com/dreamforge-ai/dreamforge/internal/ctxkeys"
	"github.com/dreamforge-ai/dreamforge/internal/service"
)

// AuthMiddleware resolves a bearer JWT to an account and stores it in the
// request context. Requests without a usable token pass through
// unauthenticated; RequireAuth decides whether that is acceptable.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			email, err := authService.VerifyJWT(token)
			if err != nil {
				// Invalid or expired token, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.UserByEmail(email)
			if err != nil {
				// Token subject no longer resolves to an account
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth fails closed with 401 when no authenticated user is in context.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing or invalid token"}`))
			return
		}
		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
