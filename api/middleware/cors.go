package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/budunsigorta/backend/pkg/env"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev frontend
	"http://localhost:5173",
}

// CORS returns middleware that applies the API's allowed origin policy.
// Extra origins can be supplied via BUDUN_CORS_ORIGIN for deployments.
func CORS() func(http.Handler) http.Handler {
	origins := defaultCORSOrigins
	if extra := env.Get("BUDUN_CORS_ORIGIN", ""); extra != "" {
		origins = append(origins, extra)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
