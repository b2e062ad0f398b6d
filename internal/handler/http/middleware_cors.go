package http

import (
	"net/http"

	"github.com/rs/cors"
)

// withCORS allows the configured browser origins to call the API with
// credentials, so the auth cookies are sent cross-origin.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   h.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Content-Encoding", "Accept", "Authorization", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: true,
	}).Handler
}
