package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the allocation and alerting workflows plus
// standard HTTP instrumentation.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)

	AllocationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "allocations_total",
			Help: "Total number of allocation runs",
		},
	)

	DeploymentsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deployments_created_total",
			Help: "Total number of deployments created, by resource type",
		},
		[]string{"resource_type"},
	)

	SMSSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sms_sent_total",
			Help: "Total number of SMS send attempts, by delivery status",
		},
		[]string{"status"},
	)

	AlertsDispatchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alerts_dispatched_total",
			Help: "Total number of alert jobs dispatched to recipients",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AllocationsTotal,
		DeploymentsCreatedTotal,
		SMSSentTotal,
		AlertsDispatchedTotal,
	)
}
