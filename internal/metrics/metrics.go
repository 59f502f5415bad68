package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granteval_sync_runs_total",
			Help: "Catalog sync runs by outcome",
		},
		[]string{"status"}, // success, failed
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "granteval_sync_duration_seconds",
			Help:    "Catalog sync duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	ProjectsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granteval_projects_upserted_total",
			Help: "Projects written by sync",
		},
		[]string{"result"}, // created, updated
	)

	EvaluationsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "granteval_evaluations_upserted_total",
			Help: "Evaluations written by reviewers",
		},
		[]string{"result"}, // created, updated
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "granteval_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route", "status"},
	)
)

func RecordSync(status string, duration time.Duration) {
	SyncRuns.WithLabelValues(status).Inc()
	SyncDuration.Observe(duration.Seconds())
}

func IncrementProjectUpsert(created bool) {
	ProjectsUpserted.WithLabelValues(resultLabel(created)).Inc()
}

func IncrementEvaluationUpsert(created bool) {
	EvaluationsUpserted.WithLabelValues(resultLabel(created)).Inc()
}

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func resultLabel(created bool) string {
	if created {
		return "created"
	}
	return "updated"
}
