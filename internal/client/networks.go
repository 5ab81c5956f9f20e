package client

import (
	"context"

	"github.com/openseis/waveclient/internal/models"
)

// ListNetworks returns all available network codes.
func (c *Client) ListNetworks(ctx context.Context) ([]string, error) {
	finder, err := c.networkFinder()
	if err != nil {
		return nil, err
	}
	networks, err := finder.RetrieveAll(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(networks))
	for _, net := range networks {
		codes = append(codes, net.ID.NetworkCode)
	}
	return codes, nil
}

// ListStations returns the station codes of one network, or of every
// network when networkCode is empty. Enumerating all networks can take a
// long time against a large directory.
func (c *Client) ListStations(ctx context.Context, networkCode string) ([]string, error) {
	finder, err := c.networkFinder()
	if err != nil {
		return nil, err
	}

	var networks []models.Network
	if networkCode == "" {
		networks, err = finder.RetrieveAll(ctx)
	} else {
		networks, err = finder.RetrieveByCode(ctx, networkCode)
	}
	if err != nil {
		return nil, err
	}

	var codes []string
	for _, net := range networks {
		stations, err := finder.RetrieveStations(ctx, net.ID.NetworkCode)
		if err != nil {
			return nil, err
		}
		for _, sta := range stations {
			codes = append(codes, sta.ID.StationCode)
		}
	}
	return codes, nil
}
