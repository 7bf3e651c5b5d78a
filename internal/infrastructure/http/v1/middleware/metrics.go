package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts served requests and their latency per method, route and status.
func Metrics(reg prometheus.Registerer) (gin.HandlerFunc, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedme",
		Subsystem: "mockapi",
		Name:      "requests_total",
		Help:      "Served requests by method, route and status.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "feedme",
		Subsystem: "mockapi",
		Name:      "request_duration_seconds",
		Help:      "Request handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	for _, col := range []prometheus.Collector{requests, latency} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}, nil
}
