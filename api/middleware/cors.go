package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/permataindah/storefront-backend/pkg/config"
)

// CORS returns middleware that applies the storefront's allowed origin policy.
// Origins come from configuration so deployments can add their frontend
// domains without a code change.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
