// Package client implements the waveform request client: it resolves the
// remote metadata and data services through the directory once at
// construction, then exposes synchronous retrieval and lookup calls.
package client

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/openseis/waveclient/internal/codec"
	"github.com/openseis/waveclient/internal/config"
	"github.com/openseis/waveclient/internal/errs"
	"github.com/openseis/waveclient/internal/naming"
	"github.com/openseis/waveclient/internal/remote"
	middleware "github.com/openseis/waveclient/internal/remote/middlewares"
)

// hostLittleEndian reports the host byte order, compared against each
// chunk's declared order to decide whether the codec must swap.
var hostLittleEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0201

// Client is the waveform request client. The resolved service capabilities
// are established once at construction and reused read-only afterwards; a
// capability that failed to resolve stays nil and dependent calls fail with
// errs.ErrConnection.
type Client struct {
	log     *logrus.Logger
	decoder codec.Decoder
	finder  remote.NetworkFinder
	dc      remote.DataCenter
}

// New resolves both services through the directory and builds the client.
// Failure of a single service degrades to a warning; failure of both aborts.
func New(ctx context.Context, cfg *config.Config, decoder codec.Decoder, log *logrus.Logger) (*Client, error) {
	httpClient := remote.NewHTTPClient(transportConfig(cfg.Transport), log)
	if err := registerMetrics(); err != nil {
		return nil, err
	}

	resolver, err := naming.NewResolver(cfg.Directory.Address, httpClient, cfg.Directory.CacheSize, log)
	if err != nil {
		return nil, err
	}

	c := &Client{log: log, decoder: decoder}

	dcRef, err := resolver.Resolve(ctx, naming.ComposeName(cfg.Directory.NetworkDC, remote.CapabilityNetworkDC))
	if err == nil {
		var finderRef naming.ObjectRef
		finderRef, err = remote.ResolveFinder(ctx, httpClient, dcRef)
		if err == nil {
			c.finder = remote.NewNetworkFinder(finderRef.Endpoint, httpClient)
		}
	}
	if err != nil {
		log.WithError(err).Warn("initialization of network finder failed")
	}

	dataRef, err := resolver.ResolveNarrowed(ctx,
		naming.ComposeName(cfg.Directory.DataCenter, remote.CapabilityDataCenter),
		remote.CapabilityDataCenter)
	if err != nil {
		log.WithError(err).Warn("initialization of data center failed")
	} else {
		c.dc = remote.NewDataCenter(dataRef.Endpoint, httpClient)
	}

	if c.finder == nil && c.dc == nil {
		return nil, fmt.Errorf("%w: neither network finder nor data center could be resolved", errs.ErrConnection)
	}
	return c, nil
}

// NewFromServices builds a client over already-resolved capabilities.
func NewFromServices(finder remote.NetworkFinder, dc remote.DataCenter, decoder codec.Decoder, log *logrus.Logger) *Client {
	return &Client{log: log, decoder: decoder, finder: finder, dc: dc}
}

func (c *Client) networkFinder() (remote.NetworkFinder, error) {
	if c.finder == nil {
		return nil, fmt.Errorf("%w: network finder was never resolved", errs.ErrConnection)
	}
	return c.finder, nil
}

func (c *Client) dataCenter() (remote.DataCenter, error) {
	if c.dc == nil {
		return nil, fmt.Errorf("%w: data center was never resolved", errs.ErrConnection)
	}
	return c.dc, nil
}

func transportConfig(cfg config.TransportConfig) remote.TransportConfig {
	out := remote.DefaultTransportConfig()
	if cfg.TimeoutSeconds > 0 {
		out.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	out.RateLimit = cfg.RateLimit
	out.RateLimitBurst = cfg.RateLimitBurst
	return out
}

func registerMetrics() error {
	for _, collector := range []prometheus.Collector{middleware.Requests, middleware.Latency} {
		if err := prometheus.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}
