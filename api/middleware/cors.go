package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/lushka-backend/pkg/config"
)

// CORS applies the storefront origin policy. The session header is both
// accepted and exposed so browsers can read the token minted by
// POST /sessions. A "*" origin turns credentials off.
func CORS(cfg config.CORSConfig, sessionHeader string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", sessionHeader, requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, sessionHeader, "Retry-After"},
		AllowCredentials: !slices.Contains(cfg.Origins, "*"),
		MaxAge:           int(cfg.MaxAge.Seconds()),
	}).Handler
}
