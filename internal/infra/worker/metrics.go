package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// JobMetrics tracks newsletter job executions for the worker process.
var (
	jobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_newsletter_runs_total",
			Help: "Total number of newsletter job executions",
		},
		[]string{"status"}, // status: success, failure
	)

	jobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "worker_newsletter_run_duration_seconds",
			Help:    "Duration of newsletter job executions",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	jobEmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "worker_newsletter_emails_sent_total",
			Help: "Total number of newsletter emails delivered by the worker",
		},
	)

	jobLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_newsletter_last_success_timestamp",
			Help: "Unix timestamp of the last successful newsletter run",
		},
	)
)

// RecordJobRun records one job execution with its outcome.
func RecordJobRun(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	jobRunsTotal.WithLabelValues(status).Inc()
	jobDuration.Observe(duration.Seconds())
	if success {
		jobLastSuccess.SetToCurrentTime()
	}
}

// RecordEmailsSent adds the number of emails delivered in a run.
func RecordEmailsSent(count int) {
	if count > 0 {
		jobEmailsSent.Add(float64(count))
	}
}
