// Package remote holds the capability interfaces of the two remote services
// this client depends on, and their HTTP implementations.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/openseis/waveclient/internal/errs"
	middleware "github.com/openseis/waveclient/internal/remote/middlewares"
)

// Capability tags published by the directory service.
const (
	CapabilityNetworkDC     = "NetworkDC"
	CapabilityNetworkFinder = "NetworkFinder"
	CapabilityDataCenter    = "DataCenter"
)

// TransportConfig tunes the shared outbound HTTP client.
type TransportConfig struct {
	Timeout        time.Duration
	RateLimit      float64 // requests per second, 0 disables pacing
	RateLimitBurst int
}

// DefaultTransportConfig returns sensible transport defaults.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:        30 * time.Second,
		RateLimit:      5.0,
		RateLimitBurst: 10,
	}
}

// NewHTTPClient builds the outbound client with the full middleware chain:
// request IDs first, then pacing, then logging and metrics around the wire.
func NewHTTPClient(cfg TransportConfig, log *logrus.Logger) *http.Client {
	rt := http.DefaultTransport
	rt = middleware.NewMetricsRoundTripper(rt, middleware.Requests, middleware.Latency)
	rt = middleware.NewLoggingRoundTripper(rt, log)
	if cfg.RateLimit > 0 {
		rt = middleware.NewRateLimitRoundTripper(rt, rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst))
	}
	rt = middleware.NewRequestIDRoundTripper(rt)
	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}
}

// getJSON issues one GET and decodes the JSON reply into out.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}
	return doJSON(client, req, out)
}

// postJSON issues one POST with a JSON body and decodes the JSON reply.
func postJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrFormat, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", errs.ErrConnection, req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s: status %s", errs.ErrConnection, req.Method, req.URL, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", errs.ErrFormat, req.Method, req.URL, err)
	}
	return nil
}
