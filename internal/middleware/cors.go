package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler allows cross-origin calls from the configured browser
// origins. Origins are matched exactly (scheme + host, no trailing slash).
// PUT and DELETE are needed for trip edits, and the Authorization header so
// the frontend can send its bearer token on protected routes.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
