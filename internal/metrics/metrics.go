package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costq_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"status"},
	)

	costQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costq_cost_queries_total",
			Help: "Total number of Cost Explorer queries issued",
		},
		[]string{"outcome"},
	)

	costQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "costq_cost_query_duration_seconds",
			Help:    "Cost Explorer query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// CountRequest records one served HTTP request by response status code.
func CountRequest(status string) {
	httpRequestsTotal.WithLabelValues(status).Inc()
}

// ObserveCostQuery records the duration and outcome of one Cost Explorer query.
func ObserveCostQuery(duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	costQueriesTotal.WithLabelValues(outcome).Inc()
	costQueryDuration.Observe(duration.Seconds())
}
