package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS allows the listed origins to call the API with credentials.
// "*" allows any origin; the origin is echoed back since cookies travel.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(corsOptions(allowedOrigins))
}

func corsOptions(allowedOrigins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           600, // seconds
	}

	for _, o := range allowedOrigins {
		if o == "*" {
			// a literal "*" cannot be combined with credentials
			opts.AllowedOrigins = nil
			opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
			return opts
		}
		opts.AllowedOrigins = append(opts.AllowedOrigins, strings.TrimRight(o, "/"))
	}
	return opts
}
