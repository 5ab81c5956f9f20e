package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openseis/waveclient/internal/errs"
	"github.com/openseis/waveclient/internal/models"
)

// GetResponse returns the normalized pole-zero response of an instrument:
// the first pole-zero filter of the first calibration stage effective at the
// given instant, with the stage's A0 normalization factor as gain and the
// overall sensitivity factor attached. Wildcards are not permitted.
func (c *Client) GetResponse(ctx context.Context, network, station, channel string, at time.Time) (*models.PAZ, error) {
	if strings.Contains(channel, "*") {
		return nil, fmt.Errorf("%w: wildcards not allowed in channel code", errs.ErrConfig)
	}

	net, err := c.selectNetwork(ctx, network)
	if err != nil {
		return nil, err
	}

	stations, err := c.finder.RetrieveStations(ctx, net.ID.NetworkCode)
	if err != nil {
		return nil, err
	}
	var stationMatches []models.Station
	for _, sta := range stations {
		if sta.ID.StationCode == station {
			stationMatches = append(stationMatches, sta)
		}
	}
	sta, err := firstOrWarn(c, stationMatches, "station")
	if err != nil {
		return nil, err
	}

	channels, err := c.finder.RetrieveChannelsByCode(ctx, net.ID.NetworkCode, sta.ID.StationCode, "", channel)
	if err != nil {
		return nil, err
	}
	var channelMatches []models.Channel
	for _, ch := range channels {
		if ch.ID.ChannelCode == channel {
			channelMatches = append(channelMatches, ch)
		}
	}
	ch, err := firstOrWarn(c, channelMatches, "channel")
	if err != nil {
		return nil, err
	}

	inst, err := c.finder.RetrieveInstrumentation(ctx, ch.ID, at)
	if err != nil {
		return nil, err
	}

	resp := inst.Response
	stage, err := firstOrWarn(c, resp.Stages, "response stage")
	if err != nil {
		return nil, err
	}

	var poleZeroFilters []models.Filter
	for _, f := range stage.Filters {
		if f.Type == models.FilterTypePoleZero {
			poleZeroFilters = append(poleZeroFilters, f)
		}
	}
	filter, err := firstOrWarn(c, poleZeroFilters, "pole zero filter")
	if err != nil {
		return nil, err
	}

	norm, err := firstOrWarn(c, stage.Normalizations, "normalization")
	if err != nil {
		return nil, err
	}

	paz := poleZeroToPAZ(filter)
	paz.Gain = norm.AoFactor
	paz.Sensitivity = resp.Sensitivity.Factor
	return paz, nil
}

// poleZeroToPAZ converts a wire pole-zero filter to the in-memory form.
func poleZeroToPAZ(filter models.Filter) *models.PAZ {
	paz := &models.PAZ{
		Poles: make([]complex128, len(filter.Poles)),
		Zeros: make([]complex128, len(filter.Zeros)),
	}
	for i, p := range filter.Poles {
		paz.Poles[i] = complex(p.Real, p.Imag)
	}
	for i, z := range filter.Zeros {
		paz.Zeros[i] = complex(z.Real, z.Imag)
	}
	return paz
}
