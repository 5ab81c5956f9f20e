package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLoggingRoundTripper logs every outbound request with its request ID,
// status and duration.
func NewLoggingRoundTripper(next http.RoundTripper, log *logrus.Logger) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)

		fields := logrus.Fields{
			"request_id": req.Header.Get(RequestIDHeader),
			"method":     req.Method,
			"url":        req.URL.String(),
			"duration":   time.Since(start).String(),
		}
		if err != nil {
			log.WithFields(fields).WithError(err).Warn("outbound request failed")
			return nil, err
		}
		fields["status"] = resp.StatusCode
		log.WithFields(fields).Debug("outbound request")
		return resp, nil
	})
}
