package client

import (
	"context"
	"fmt"
	"time"

	"github.com/openseis/waveclient/internal/errs"
	"github.com/openseis/waveclient/internal/models"
)

// GetCoordinates returns the geographic position of the station record
// effective at the given instant. Elevation units other than meters degrade
// to a warning; location kinds other than geographic are not supported.
func (c *Client) GetCoordinates(ctx context.Context, network, station string, at time.Time) (*models.Coordinates, error) {
	sta, err := c.selectStation(ctx, network, station, at)
	if err != nil {
		return nil, err
	}

	loc := sta.Location
	if loc.Type != models.LocationTypeGeographic {
		return nil, fmt.Errorf("%w: location type %q is not implemented", errs.ErrUnsupportedFormat, loc.Type)
	}
	if loc.Elevation.Units.Base != models.UnitMeter {
		c.log.WithField("unit", loc.Elevation.Units.Base).Warn("station elevation is not in meters")
	}

	return &models.Coordinates{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Elevation: loc.Elevation.Value,
	}, nil
}
