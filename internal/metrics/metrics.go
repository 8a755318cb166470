package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posbridge_upstream_requests_total",
			Help: "Requests sent to the POS API by method and response status",
		},
		[]string{"method", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "posbridge_upstream_request_duration_seconds",
			Help:    "Duration of POS API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	TokenExchangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posbridge_token_exchanges_total",
			Help: "Client-credentials exchanges by result",
		},
		[]string{"result"},
	)

	PagesFetchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posbridge_pages_fetched_total",
			Help: "List pages fetched while walking paginated endpoints",
		},
	)

	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posbridge_tool_invocations_total",
			Help: "Tool invocations by tool name and outcome",
		},
		[]string{"tool", "outcome"},
	)

	ToolInvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "posbridge_tool_invocation_duration_seconds",
			Help:    "Duration of tool invocations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posbridge_http_requests_total",
			Help: "Inbound HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "posbridge_http_request_duration_seconds",
			Help:    "Duration of inbound HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	AuditDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posbridge_audit_dropped_total",
			Help: "Audit records dropped because the queue was full",
		},
	)
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		TokenExchangesTotal,
		PagesFetchedTotal,
		ToolInvocationsTotal,
		ToolInvocationDuration,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AuditDroppedTotal,
	)
}
