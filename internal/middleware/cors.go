package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CorsOptions is shared with the websocket upgrader so that both accept
// the same origins.
func CorsOptions(allowedOrigins []string) cors.Options {
	return cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
}

func Cors(allowedOrigins []string) Middleware {
	return cors.New(CorsOptions(allowedOrigins)).Handler
}
