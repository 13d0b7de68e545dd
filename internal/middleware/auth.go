package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mkoval/tripbook/backend/internal/auth"
)

// TokenVerifier validates a bearer token and returns its claims.
// *auth.JWTManager is the production implementation.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type contextKey string

// claimsKey is the context key under which verified claims are stored.
const claimsKey contextKey = "authClaims"

// NewAuthHandler returns a middleware that requires a valid bearer token.
// A request with no Authorization header is rejected with 401; a header whose
// token fails verification (bad signature, malformed, expired — the verifier
// does not say which) is rejected with 403. On success the verified claims
// are stored in the request context for ClaimsFromContext.
func NewAuthHandler(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, http.StatusUnauthorized)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeAuthError(w, http.StatusForbidden)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeAuthError(w, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by NewAuthHandler, or nil when
// the request never passed through it.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// writeAuthError writes the uniform JSON auth failure body. The message never
// distinguishes missing, malformed, or expired tokens beyond the status code.
func writeAuthError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": "access denied"})
}
