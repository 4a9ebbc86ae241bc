package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_http_requests_total",
		Help: "The total number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snake_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Scores
	ScoresSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snake_scores_submitted_total",
		Help: "The total number of score records stored",
	})
	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_validation_failures_total",
		Help: "The total number of rejected submissions by field",
	}, []string{"field"})
	StorageErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_storage_errors_total",
		Help: "The total number of storage failures by operation",
	}, []string{"op"})
)
