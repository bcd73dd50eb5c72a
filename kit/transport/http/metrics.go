package http

import "github.com/prometheus/client_golang/prometheus"

// HTTPMetrics holds the request metric vectors consumed by the Metrics
// middleware. Callers register both vectors with their registry.
type HTTPMetrics struct {
	Requests   *prometheus.CounterVec
	RequestDur *prometheus.HistogramVec
}

// NewMetrics builds the request count and duration vectors under the
// given namespace.
func NewMetrics(namespace string) *HTTPMetrics {
	labels := []string{"handler", "method", "status", "response_code"}
	return &HTTPMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "api_requests_total",
			Help:      "Number of HTTP requests received.",
		}, labels),
		RequestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "api_request_duration_seconds",
			Help:      "Time taken to respond to HTTP requests.",
		}, labels),
	}
}
