// Package metric provides RED (request, error, duration) instrumentation
// for service middleware.
package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// REDClient is a client for the RED metrics of a service.
type REDClient struct {
	count    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a new REDClient for the named service, registering its
// collectors with reg.
func New(reg prometheus.Registerer, service string) *REDClient {
	c := &REDClient{
		count: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "service",
			Subsystem: service,
			Name:      "call_total",
			Help:      "Number of calls to the " + service + " service",
		}, []string{"method", "error"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "service",
			Subsystem: service,
			Name:      "duration_seconds",
			Help:      "Duration of calls to the " + service + " service",
		}, []string{"method"}),
	}
	reg.MustRegister(c.count, c.duration)
	return c
}

// Record returns a function that records the result of a method call.
// Typical usage is
//
//	rec := client.Record("find_record")
//	rec, err := s.underlying.FindRecord(ctx, name)
//	return rec(err)
func (c *REDClient) Record(method string) func(error) error {
	start := time.Now()
	return func(err error) error {
		c.count.With(prometheus.Labels{
			"method": method,
			"error":  strconv.FormatBool(err != nil),
		}).Inc()
		c.duration.With(prometheus.Labels{"method": method}).Observe(time.Since(start).Seconds())
		return err
	}
}
