package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Requests counts outbound requests by host, method and status.
var Requests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "waveclient_requests_total",
		Help: "Outbound requests to the directory and data services.",
	},
	[]string{"host", "method", "status"},
)

// Latency observes outbound request latency by host and method.
var Latency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "waveclient_request_duration_seconds",
		Help:    "Outbound request latency.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"host", "method"},
)

// NewMetricsRoundTripper records request counts and latency.
func NewMetricsRoundTripper(
	next http.RoundTripper,
	requests *prometheus.CounterVec,
	latency *prometheus.HistogramVec,
) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)

		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		requests.WithLabelValues(req.URL.Host, req.Method, status).Inc()
		latency.WithLabelValues(req.URL.Host, req.Method).Observe(time.Since(start).Seconds())

		return resp, err
	})
}
