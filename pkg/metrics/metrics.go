package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики для HTTP запросов
var (
	// Счетчик всех HTTP запросов
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Гистограмма времени выполнения HTTP запросов
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Метрики для OpenSearch
var (
	// Счетчик OpenSearch операций
	OpenSearchOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opensearch_operations_total",
			Help: "Total number of OpenSearch operations",
		},
		[]string{"operation", "index", "status"},
	)

	// Время выполнения OpenSearch операций
	OpenSearchOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opensearch_operation_duration_seconds",
			Help:    "Duration of OpenSearch operations in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "index"},
	)
)

// Метрики кэша фасетов
var (
	FacetCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "facet_cache_hits_total",
			Help: "Total number of facet cache hits",
		},
	)

	FacetCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "facet_cache_misses_total",
			Help: "Total number of facet cache misses",
		},
	)
)

// RecordHTTPRequest записывает метрики одного HTTP запроса
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOpenSearchOperation записывает метрики одной операции OpenSearch
func RecordOpenSearchOperation(operation, index, status string, duration time.Duration) {
	OpenSearchOperationsTotal.WithLabelValues(operation, index, status).Inc()
	OpenSearchOperationDuration.WithLabelValues(operation, index).Observe(duration.Seconds())
}

// RecordFacetCacheHit записывает попадание в кэш фасетов
func RecordFacetCacheHit(hit bool) {
	if hit {
		FacetCacheHitsTotal.Inc()
	} else {
		FacetCacheMissesTotal.Inc()
	}
}
