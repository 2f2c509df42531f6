package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventhub_upstream_requests_total",
			Help: "Total requests made to the EventHub API",
		},
		[]string{"method", "route", "status"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventhub_upstream_request_duration_seconds",
			Help:    "Latency of requests made to the EventHub API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventhub_http_requests_total",
			Help: "Total inbound HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventhub_http_request_duration_seconds",
			Help:    "Latency of inbound HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	rsvpToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventhub_rsvp_toggles_total",
			Help: "RSVP create and cancel attempts",
		},
		[]string{"action", "result"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventhub_rate_limited_total",
			Help: "Requests rejected by the auth rate limiter",
		},
	)

	limiterClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventhub_rate_limiter_clients",
			Help: "Client addresses currently tracked by the rate limiter",
		},
	)
)

// ObserveUpstream records one API call. Status 0 marks a transport failure.
func ObserveUpstream(method, route string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(method, route, code).Inc()
	upstreamDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordRSVP(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	rsvpToggles.WithLabelValues(action, result).Inc()
}

func RecordRateLimited() {
	rateLimited.Inc()
}

func SetLimiterClients(n int) {
	limiterClients.Set(float64(n))
}
