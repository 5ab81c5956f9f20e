package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// NewRateLimitRoundTripper paces outbound requests through the limiter.
// Waiting respects the request context, so cancellation still works while
// blocked on a token.
func NewRateLimitRoundTripper(next http.RoundTripper, limiter *rate.Limiter) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
		return next.RoundTrip(req)
	})
}
