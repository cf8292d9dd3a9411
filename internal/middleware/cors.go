package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/ferdiebergado/pneumodetect/internal/config"
)

// CORS allows credentialed requests from the configured frontend origins.
func CORS(cfg config.CORS) func(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler
}
