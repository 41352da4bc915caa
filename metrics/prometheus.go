package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	remoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_requests_total",
			Help: "Total number of calls issued to the supplier and storefront APIs.",
		},
		[]string{"method", "endpoint", "status"},
	)
	remoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_request_duration_seconds",
			Help:    "Histogram of remote call durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	productsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_products_created_total",
			Help: "Storefront products created per category.",
		},
		[]string{"category"},
	)
	productsUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_products_updated_total",
			Help: "Storefront products updated in place per category.",
		},
		[]string{"category"},
	)
	imagesUploaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_images_uploaded_total",
			Help: "Images uploaded to the storefront per category.",
		},
		[]string{"category"},
	)
	syncErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_errors_total",
			Help: "Per-item failures per category.",
		},
		[]string{"category"},
	)
	recreateGaps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_recreate_gaps_total",
			Help: "Recreate paths where the delete succeeded but the create failed.",
		},
	)
)

func init() {
	prometheus.MustRegister(remoteRequestsTotal)
	prometheus.MustRegister(remoteRequestDuration)
	prometheus.MustRegister(productsCreated)
	prometheus.MustRegister(productsUpdated)
	prometheus.MustRegister(imagesUploaded)
	prometheus.MustRegister(syncErrors)
	prometheus.MustRegister(recreateGaps)
}

// RecordRequest записывает метрики для удаленного вызова.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	remoteRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	remoteRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func RecordProductCreated(category string) {
	productsCreated.WithLabelValues(category).Inc()
}

func RecordProductUpdated(category string) {
	productsUpdated.WithLabelValues(category).Inc()
}

func RecordImageUploaded(category string) {
	imagesUploaded.WithLabelValues(category).Inc()
}

func RecordSyncError(category string) {
	syncErrors.WithLabelValues(category).Inc()
}

func RecordRecreateGap() {
	recreateGaps.Inc()
}

// classifyStatus классифицирует HTTP-статус код в строку.
func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler возвращает HTTP-обработчик для экспорта метрик Prometheus.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
