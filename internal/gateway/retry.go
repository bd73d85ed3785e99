package gateway

import (
	"math"
	"time"
)

// RetryPolicy defines exponential backoff for calls to the server tier.
// The zero value never retries.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// NewRetryPolicy backs off from delay, doubling up to eight times delay.
func NewRetryPolicy(retries int, delay time.Duration) RetryPolicy {
	if retries < 0 {
		retries = 0
	}
	return RetryPolicy{
		MaxRetries:    retries,
		InitialDelay:  delay,
		MaxDelay:      8 * delay,
		BackoffFactor: 2,
	}
}

// NextDelay returns delay for a given retry (1-based) with clamping.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = 100 * time.Millisecond
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1))
	d := time.Duration(delay)
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = r.InitialDelay
	}
	return d
}
