package server

import (
	"net/http"
	"time"

	"github.com/rx3lixir/event-explorer/pkg/logger"
)

// corsMiddleware разрешает запросы из браузерного UI
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware пишет одну строку на запрос
func loggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.Debug("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}
