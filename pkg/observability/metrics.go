// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring autobot.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for text-generation latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// RunBuckets defines histogram buckets for compile-and-run durations.
var RunBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobot_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autobot_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method"},
	)

	// StreamingConnections tracks the number of open run event streams.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "autobot_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// RunsTotal counts finished runs by language and final status.
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobot_runs_total",
			Help: "Finished runs",
		},
		[]string{"language", "status"},
	)

	// RunDuration records wall-clock run duration in seconds by language.
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autobot_run_duration_seconds",
			Help:    "Run duration",
			Buckets: RunBuckets,
		},
		[]string{"language"},
	)

	// RunsInFlight is 1 while the run slot is occupied.
	RunsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "autobot_runs_in_flight",
			Help: "Runs currently executing",
		},
	)

	// ProviderRequestsTotal counts requests sent to text-generation providers.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobot_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	// ProviderLatency records provider latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autobot_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// ProviderTokensTotal counts tokens processed by direction (input/output).
	ProviderTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobot_provider_tokens_total",
			Help: "Token count",
		},
		[]string{"provider", "model", "direction"},
	)

	// RelayRejectedTotal counts prompts refused before reaching a provider.
	RelayRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobot_relay_rejected_total",
			Help: "Prompts rejected by input validation",
		},
		[]string{"reason"},
	)

	// ToolCallsTotal counts MCP tool calls by name and outcome.
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobot_tool_calls_total",
			Help: "MCP tool calls",
		},
		[]string{"tool_name", "status"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobot_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		RunsTotal,
		RunDuration,
		RunsInFlight,
		ProviderRequestsTotal,
		ProviderLatency,
		ProviderTokensTotal,
		RelayRejectedTotal,
		ToolCallsTotal,
		RateLimitRejectedTotal,
	)
}
