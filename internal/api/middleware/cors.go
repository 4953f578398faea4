package middleware

import (
	"github.com/go-chi/cors"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
)

// NewCORS returns the CORS policy for the browser frontend. The identity
// header must be allowed or the frontend cannot act as a signed-in user.
func NewCORS(cfg config.CORSConfig) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", UserIDHeader},
		ExposedHeaders:   []string{"Content-Type", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
