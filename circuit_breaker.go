package smc

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// NewCircuitBreakerConfig returns a function that creates the client's
// circuit breaker. This is a helper for common use cases.
// Uses CircuitBreaker[bool] so a single breaker covers every operation.
//
// Key-not-found outcomes count as successes: a missing key is an answer
// from the controller, not a failure of it.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func() *gobreaker.CircuitBreaker[bool] {
	return func() *gobreaker.CircuitBreaker[bool] {
		settings := gobreaker.Settings{
			Name:        "smc",
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			IsSuccessful: func(err error) bool {
				return err == nil || IsKeyNotFound(err)
			},
		}
		return gobreaker.NewCircuitBreaker[bool](settings)
	}
}
