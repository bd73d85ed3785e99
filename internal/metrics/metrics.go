package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shareit"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Bookings entering each status.",
		},
		[]string{"status"},
	)

	commentsPosted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_posted_total",
			Help:      "Comments accepted after a completed rental.",
		},
	)

	gatewayForwards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_forward_total",
			Help:      "Requests forwarded by the gateway by method and upstream status.",
		},
		[]string{"method", "status"},
	)

	gatewayRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_rejected_total",
			Help:      "Requests rejected by the gateway before forwarding.",
		},
		[]string{"reason"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingTransitions, commentsPosted, gatewayForwards, gatewayRejected)
	})
}

// ObserveHTTP records one served request. An empty route is reported as "unmatched".
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

func IncCommentPosted() {
	commentsPosted.Inc()
}

// IncGatewayForward counts a forwarded request; status 0 means the upstream was unreachable.
func IncGatewayForward(method string, status int) {
	gatewayForwards.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func IncGatewayRejected(reason string) {
	gatewayRejected.WithLabelValues(reason).Inc()
}
