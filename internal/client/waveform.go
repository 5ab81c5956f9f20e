package client

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/openseis/waveclient/internal/codec"
	"github.com/openseis/waveclient/internal/errs"
	"github.com/openseis/waveclient/internal/models"
	"github.com/openseis/waveclient/internal/remote"
)

// WaveformRequest selects the waveform data to retrieve. A channel code of
// exactly three characters with "*" in the third position expands to the Z,
// N and E components. FetchResponse and FetchCoordinates attach deep copies
// of the respective metadata to every returned series; both issue extra
// lookups and slow the request down.
type WaveformRequest struct {
	Network  string
	Station  string
	Location string
	Channel  string
	Start    time.Time
	End      time.Time

	FetchResponse    bool
	FetchCoordinates bool
}

// GetWaveform retrieves, decodes and assembles one time series per matching
// channel, trimmed to the requested window. Requests are dispatched strictly
// sequentially; wildcard results concatenate in Z, N, E order.
func (c *Client) GetWaveform(ctx context.Context, req WaveformRequest) ([]*models.TimeSeries, error) {
	if _, err := c.dataCenter(); err != nil {
		return nil, err
	}

	location := models.NormalizeLocation(req.Location)

	var result []*models.TimeSeries
	for _, channelCode := range expandChannel(req.Channel) {
		series, err := c.fetchChannel(ctx, req.Network, req.Station, location, channelCode, req.Start, req.End)
		if err != nil {
			return nil, err
		}
		result = append(result, series...)
	}

	if req.FetchResponse {
		channelCode, err := c.responseChannel(req.Channel)
		if err != nil {
			return nil, err
		}
		paz, err := c.GetResponse(ctx, req.Network, req.Station, channelCode, req.Start)
		if err != nil {
			return nil, err
		}
		for _, ts := range result {
			ts.PAZ = paz.Clone()
		}
	}

	if req.FetchCoordinates {
		coords, err := c.GetCoordinates(ctx, req.Network, req.Station, req.Start)
		if err != nil {
			return nil, err
		}
		for _, ts := range result {
			ts.Coordinates = coords.Clone()
		}
	}

	return result, nil
}

// expandChannel builds the ordered batch of concrete channel codes for one
// request. Only the component position may be wildcarded.
func expandChannel(channel string) []string {
	if len(channel) == 3 && channel[2] == '*' {
		band := channel[:2]
		return []string{band + "Z", band + "N", band + "E"}
	}
	return []string{channel}
}

// responseChannel maps a possibly wildcarded channel code to the one used
// for the response lookup. Component wildcards resolve to Z with a warning;
// a wildcarded band code cannot be resolved.
func (c *Client) responseChannel(channel string) (string, error) {
	if !strings.Contains(channel, "*") {
		return channel, nil
	}
	if len(channel) < 3 {
		return "", fmt.Errorf("%w: cannot fetch response with wildcarded band codes", errs.ErrConfig)
	}
	c.log.Warn("wildcard in channel code, looking up the Z component response")
	return strings.ReplaceAll(channel, "*", "Z"), nil
}

// fetchChannel issues one retrieval covering the full window for a single
// concrete channel code and assembles the returned segments.
func (c *Client) fetchChannel(ctx context.Context, network, station, location, channel string, start, end time.Time) ([]*models.TimeSeries, error) {
	net, err := c.selectNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	channels, err := c.finder.RetrieveChannelsByCode(ctx, net.ID.NetworkCode, station, location, channel)
	if err != nil {
		return nil, err
	}

	filters := make([]remote.RequestFilter, 0, len(channels))
	for _, ch := range channels {
		filters = append(filters, remote.RequestFilter{Channel: ch.ID, Start: start, End: end})
	}
	if len(filters) == 0 {
		return nil, nil
	}

	segments, err := c.dc.RetrieveSeismograms(ctx, filters)
	if err != nil {
		return nil, err
	}

	var result []*models.TimeSeries
	for _, seg := range segments {
		// Zero-point segments are keep-alive markers.
		if seg.NumPoints == 0 {
			continue
		}
		ts, err := c.assembleSegment(seg)
		if err != nil {
			return nil, err
		}
		ts.Trim(start, end)
		result = append(result, ts)
	}
	return result, nil
}

// assembleSegment decodes a segment's chunks into one consistent series.
func (c *Client) assembleSegment(seg models.Segment) (*models.TimeSeries, error) {
	rate, err := samplingRate(seg)
	if err != nil {
		return nil, err
	}

	samples := make([]int32, 0, seg.NumPoints)
	for _, chunk := range seg.Chunks {
		swap := hostLittleEndian != chunk.LittleEndian
		decoded, err := codec.Decode(c.decoder, codec.Tag(chunk.Compression), chunk.Data, chunk.NumPoints, swap)
		if err != nil {
			return nil, err
		}
		samples = append(samples, decoded...)
	}

	if len(samples) != seg.NumPoints {
		return nil, fmt.Errorf("%w: segment %s declares %d points, decoded %d",
			errs.ErrValidation, seg.Channel, seg.NumPoints, len(samples))
	}

	channel := seg.Channel
	channel.LocationCode = strings.TrimSpace(channel.LocationCode)
	return &models.TimeSeries{
		Channel:      channel,
		StartTime:    seg.BeginTime,
		NumPoints:    len(samples),
		SamplingRate: rate,
		Samples:      samples,
	}, nil
}

// samplingRate derives the rate in Hz from the segment's interval quantity:
// the interval spans the whole segment, so rate = points / duration where
// duration = (value * 10^power * multi_factor)^exponent seconds.
func samplingRate(seg models.Segment) (float64, error) {
	units := seg.Interval.Units
	if units.Base != models.UnitSecond {
		return 0, fmt.Errorf("%w: interval unit %q, want %s", errs.ErrFormat, units.Base, models.UnitSecond)
	}
	delta := math.Pow(seg.Interval.Value*math.Pow(10, float64(units.Power))*units.MultiFactor, float64(units.Exponent))
	if delta <= 0 || math.IsInf(delta, 0) || math.IsNaN(delta) {
		return 0, fmt.Errorf("%w: non-positive segment interval", errs.ErrFormat)
	}
	return float64(seg.NumPoints) / delta, nil
}
