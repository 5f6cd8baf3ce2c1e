package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// statusRecorder запоминает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// HTTPMiddleware записывает метрики для каждого HTTP запроса
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		RecordHTTPRequest(
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.status),
			time.Since(start),
		)
	})
}
