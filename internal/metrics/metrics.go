package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Audit trail
	AuditRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_records_total",
			Help: "Audit records written, by action",
		},
		[]string{"action"}, // CREATE|UPDATE|DELETE
	)
	AuditWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Audit record inserts that failed after a successful mutation",
		},
	)
	AuditSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_skipped_total",
			Help: "Mutations whose entity could not be classified for auditing",
		},
	)

	// Contributor sync
	ContributorSyncRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contributor_sync_runs_total",
			Help: "Contributor reconciliation runs",
		},
	)
	ContributorSyncFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contributor_sync_failures_total",
			Help: "Per-project contributor sync failures",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// handler for the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(HTTPLatency)
	prometheus.MustRegister(AuditRecordsTotal)
	prometheus.MustRegister(AuditWriteFailures)
	prometheus.MustRegister(AuditSkipped)
	prometheus.MustRegister(ContributorSyncRuns)
	prometheus.MustRegister(ContributorSyncFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
