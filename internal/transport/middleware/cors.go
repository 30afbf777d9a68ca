package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows every listed origin with credentials, any method and any header.
// A "*" entry allows all origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{TraceHeader},
		AllowCredentials: true,
	})
	return c.Handler
}
