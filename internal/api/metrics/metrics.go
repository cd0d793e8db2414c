// Package metrics defines the custom Prometheus metrics for the LabelForge
// edge proxy. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto; the echoprometheus middleware adds the generic HTTP
// request metrics on top.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "labelforge_proxy"

// ForwardedTotal counts requests relayed to the backend origin.
// Labels:
//   - method: HTTP method of the forwarded request
//   - status: upstream status code class (e.g. "200", "404")
var ForwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forwarded_total",
		Help:      "Total number of requests forwarded to the backend origin.",
	},
	[]string{"method", "status"},
)

// UpstreamFailuresTotal counts forwards that never produced an upstream
// response (connection refused, DNS failure, timeout).
var UpstreamFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_failures_total",
		Help:      "Total number of forwards that failed to reach the backend.",
	},
)

// ForwardDuration measures the end-to-end time of a forwarded request.
// Label:
//   - method: HTTP method of the forwarded request
var ForwardDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "forward_duration_seconds",
		Help:      "Duration of forwarded requests from receipt to upstream response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)
