package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORS returns middleware that answers preflight requests and sets CORS
// response headers for the given origins. "*" allows any origin, without
// credentials.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           86400,
	})
	return c.Handler
}
