package middleware

import (
	"net/http"

	"staffing-backend/internal/config"

	"github.com/rs/cors"
)

// downloadHeaders lets browser clients read the invoice PDF file name.
var downloadHeaders = []string{"Content-Disposition", "Content-Length"}

// NewCORS allows the configured dashboard origins.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		ExposedHeaders:   downloadHeaders,
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler
}
