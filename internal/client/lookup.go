package client

import (
	"context"
	"fmt"
	"time"

	"github.com/openseis/waveclient/internal/errs"
	"github.com/openseis/waveclient/internal/models"
)

// firstOrWarn applies the selection policy shared by all metadata lookups:
// an empty candidate list fails with errs.ErrNotFound, more than one match
// logs a warning and proceeds with the first element in original order.
func firstOrWarn[T any](c *Client, items []T, label string) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: no %s matches the request", errs.ErrNotFound, label)
	}
	if len(items) > 1 {
		c.log.WithField("count", len(items)).Warnf("multiple %s matches, using the first", label)
	}
	return items[0], nil
}

// selectNetwork resolves a network code to a single network record.
func (c *Client) selectNetwork(ctx context.Context, networkCode string) (models.Network, error) {
	finder, err := c.networkFinder()
	if err != nil {
		return models.Network{}, err
	}
	networks, err := finder.RetrieveByCode(ctx, networkCode)
	if err != nil {
		return models.Network{}, err
	}
	return firstOrWarn(c, networks, "network")
}

// selectStation resolves a station by code within a network, keeping only
// stations whose effective interval strictly contains the instant.
func (c *Client) selectStation(ctx context.Context, networkCode, stationCode string, at time.Time) (models.Station, error) {
	net, err := c.selectNetwork(ctx, networkCode)
	if err != nil {
		return models.Station{}, err
	}
	stations, err := c.finder.RetrieveStations(ctx, net.ID.NetworkCode)
	if err != nil {
		return models.Station{}, err
	}
	var matches []models.Station
	for _, sta := range stations {
		if sta.ID.StationCode == stationCode && sta.Effective.Contains(at) {
			matches = append(matches, sta)
		}
	}
	return firstOrWarn(c, matches, "station")
}
