package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookkeeping_http_requests_total",
		Help: "Total number of HTTP requests processed, by method, path and status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookkeeping_http_request_duration_seconds",
		Help:    "HTTP request latency distribution.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	journalEntriesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookkeeping_journal_entries_created_total",
		Help: "Journal entries accepted by the validator, by status.",
	}, []string{"status"})

	ledgerIntegrityWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookkeeping_ledger_integrity_warnings_total",
		Help: "Trial balances whose ledger-wide debits and credits did not match. Any increment is a data-integrity incident.",
	})
)

// HTTPMetrics records request counts and latencies for every route.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CountEntryCreated increments the journal entry counter.
func CountEntryCreated(status string) {
	journalEntriesCreated.WithLabelValues(status).Inc()
}

// CountLedgerIntegrityWarning increments the integrity incident counter.
func CountLedgerIntegrityWarning() {
	ledgerIntegrityWarnings.Inc()
}
