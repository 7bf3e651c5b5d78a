package remote

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder observes completed requests. Status 0 means no response was received.
type MetricsRecorder interface {
	Observe(ctx context.Context, method, path string, status int, duration time.Duration)
}

// NopMetrics discards observations.
type NopMetrics struct{}

// Observe implements MetricsRecorder.
func (NopMetrics) Observe(context.Context, string, string, int, time.Duration) {}

// PrometheusMetrics counts requests and their latency per method, route and status.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the request collectors with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "feedme",
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Backend requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "feedme",
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe implements MetricsRecorder.
func (m *PrometheusMetrics) Observe(_ context.Context, method, path string, status int, duration time.Duration) {
	route := RouteOf(path)
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, route, label).Inc()
	m.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RouteOf replaces numeric path segments with ":id" to keep label cardinality bounded:
// "/meal_dishes/12/copy_from" becomes "/meal_dishes/:id/copy_from".
func RouteOf(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
