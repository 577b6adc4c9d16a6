package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinecatch_http_requests_total",
		Help: "Number of HTTP requests processed, by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cinecatch_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	FanoutAttemptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinecatch_fanout_recipients_attempted_total",
		Help: "Eligible recipients targeted by fan-outs.",
	})

	FanoutSucceededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinecatch_fanout_recipients_succeeded_total",
		Help: "Recipients the push gateway reported as delivered.",
	})

	InvalidTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinecatch_fanout_invalid_tokens_total",
		Help: "Device tokens classified invalid and scheduled for cleanup.",
	})

	GatewayFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinecatch_push_gateway_failures_total",
		Help: "Batch calls that failed entirely (unreachable gateway or timeout).",
	})
)
