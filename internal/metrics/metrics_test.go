package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	t.Run("http", func(t *testing.T) {
		before := testutil.ToFloat64(httpRequests.WithLabelValues("GET /bookings/{id}", "GET", "200"))
		ObserveHTTP("GET /bookings/{id}", "GET", 200, 15*time.Millisecond)
		after := testutil.ToFloat64(httpRequests.WithLabelValues("GET /bookings/{id}", "GET", "200"))
		assert.Equal(t, before+1, after)

		ObserveHTTP("", "GET", 404, time.Millisecond)
		assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404")))
	})

	t.Run("bookings", func(t *testing.T) {
		IncBookingTransition("APPROVED")
		IncBookingTransition("APPROVED")
		assert.Equal(t, float64(2), testutil.ToFloat64(bookingTransitions.WithLabelValues("APPROVED")))

		before := testutil.ToFloat64(commentsPosted)
		IncCommentPosted()
		assert.Equal(t, before+1, testutil.ToFloat64(commentsPosted))
	})

	t.Run("gateway", func(t *testing.T) {
		IncGatewayForward("POST", 201)
		IncGatewayRejected("validation")
		assert.Equal(t, float64(1), testutil.ToFloat64(gatewayForwards.WithLabelValues("POST", "201")))
		assert.Equal(t, float64(1), testutil.ToFloat64(gatewayRejected.WithLabelValues("validation")))
	})
}
