package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openseis/waveclient/internal/errs"
	"github.com/openseis/waveclient/internal/models"
)

var segmentStart = time.Date(2003, 6, 20, 6, 0, 0, 0, time.UTC)

func testChannelID(channelCode string) models.ChannelID {
	return models.ChannelID{
		NetworkCode:  "GE",
		StationCode:  "APE",
		LocationCode: models.BlankLocation,
		ChannelCode:  channelCode,
	}
}

// testSegment builds a 100 Hz segment with one STEIM1 chunk. The fake
// decoder synthesizes samples, so the chunk payload is a placeholder.
func testSegment(channelCode string, numPoints int) models.Segment {
	return models.Segment{
		Channel:   testChannelID(channelCode),
		BeginTime: segmentStart,
		NumPoints: numPoints,
		Interval: models.Quantity{
			Value: float64(numPoints) / 100.0,
			Units: models.UnitDesc{Base: models.UnitSecond, Power: 0, MultiFactor: 1, Exponent: 1},
		},
		Chunks: []models.Chunk{{
			Compression:  10,
			LittleEndian: false,
			NumPoints:    numPoints,
			Data:         []byte{0xde, 0xad},
		}},
	}
}

func testFixtures() (*fakeFinder, *fakeDC) {
	finder := &fakeFinder{
		networks: []models.Network{{ID: models.NetworkID{NetworkCode: "GE"}}},
		stations: map[string][]models.Station{
			"GE": {{
				ID: models.StationID{StationCode: "APE"},
				Location: models.Location{
					Type:      models.LocationTypeGeographic,
					Latitude:  37.07,
					Longitude: 25.53,
					Elevation: models.Quantity{Value: 620, Units: models.UnitDesc{Base: models.UnitMeter}},
				},
				Effective: models.EffectiveTime{
					Start: segmentStart.AddDate(-1, 0, 0),
					End:   segmentStart.AddDate(1, 0, 0),
				},
			}},
		},
		channels: []models.Channel{
			{ID: testChannelID("SHZ")},
			{ID: testChannelID("SHN")},
			{ID: testChannelID("SHE")},
		},
		instruments: map[string]models.Instrumentation{
			"SHZ": testInstrumentation(),
		},
	}
	dc := &fakeDC{segments: map[string][]models.Segment{
		"SHZ": {testSegment("SHZ", 1000)},
		"SHN": {testSegment("SHN", 1000)},
		"SHE": {testSegment("SHE", 1000)},
	}}
	return finder, dc
}

func testInstrumentation() models.Instrumentation {
	return models.Instrumentation{
		Response: models.InstrumentResponse{
			Stages: []models.Stage{{
				Filters: []models.Filter{{
					Type:  models.FilterTypePoleZero,
					Poles: []models.ComplexValue{{Real: -4.44, Imag: 4.44}},
					Zeros: []models.ComplexValue{{Real: 0, Imag: 0}},
				}},
				Normalizations: []models.Normalization{{AoFactor: 0.4}},
			}},
			Sensitivity: models.Sensitivity{Factor: 6.0e8},
		},
	}
}

func wholeWindow() (time.Time, time.Time) {
	return segmentStart, segmentStart.Add(10 * time.Second)
}

func TestGetWaveformSingleChannel(t *testing.T) {
	finder, dc := testFixtures()
	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Location: "", Channel: "SHZ",
		Start: start, End: end,
	})
	require.NoError(t, err)
	require.Len(t, series, 1)

	ts := series[0]
	assert.Equal(t, "SHZ", ts.Channel.ChannelCode)
	assert.Equal(t, "", ts.Channel.LocationCode, "blank location is stripped on output")
	assert.Equal(t, 100.0, ts.SamplingRate)
	assert.Equal(t, 1000, ts.NumPoints)
	assert.Equal(t, len(ts.Samples), ts.NumPoints)
	assert.True(t, ts.StartTime.Equal(segmentStart))
}

func TestGetWaveformWildcardExpansion(t *testing.T) {
	finder, dc := testFixtures()
	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SH*",
		Start: start, End: end,
	})
	require.NoError(t, err)

	// Exactly three sequential requests, in Z, N, E order.
	assert.Equal(t, []string{"SHZ", "SHN", "SHE"}, finder.channelCalls)
	require.Len(t, dc.requests, 3)

	require.Len(t, series, 3)
	assert.Equal(t, "SHZ", series[0].Channel.ChannelCode)
	assert.Equal(t, "SHN", series[1].Channel.ChannelCode)
	assert.Equal(t, "SHE", series[2].Channel.ChannelCode)
}

func TestGetWaveformNormalizesLocation(t *testing.T) {
	finder, dc := testFixtures()
	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	_, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Location: " ", Channel: "SHZ",
		Start: start, End: end,
	})
	require.NoError(t, err)
	require.Len(t, finder.locationCalls, 1)
	assert.Equal(t, models.BlankLocation, finder.locationCalls[0])
}

func TestGetWaveformSkipsKeepAliveSegments(t *testing.T) {
	finder, dc := testFixtures()
	keepAlive := models.Segment{Channel: testChannelID("SHZ"), BeginTime: segmentStart}
	dc.segments["SHZ"] = []models.Segment{keepAlive, testSegment("SHZ", 100)}

	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SHZ", Start: start, End: end,
	})
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 100, series[0].NumPoints)
}

func TestGetWaveformTrimsToWindow(t *testing.T) {
	finder, dc := testFixtures()
	cli, _ := newTestClient(finder, dc)

	// 1000 points at 100 Hz span 10s; request the middle 2s only.
	start := segmentStart.Add(4 * time.Second)
	end := segmentStart.Add(6 * time.Second)

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SHZ", Start: start, End: end,
	})
	require.NoError(t, err)
	require.Len(t, series, 1)

	ts := series[0]
	assert.Equal(t, 201, ts.NumPoints, "both window bounds are inclusive")
	assert.True(t, ts.StartTime.Equal(start))
	assert.False(t, ts.EndTime().After(end))
	assert.Equal(t, int32(400), ts.Samples[0], "leading samples are dropped, not shifted")
}

func TestGetWaveformRejectsWrongUnit(t *testing.T) {
	finder, dc := testFixtures()
	seg := testSegment("SHZ", 100)
	seg.Interval.Units.Base = "HERTZ"
	dc.segments["SHZ"] = []models.Segment{seg}

	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SHZ", Start: start, End: end,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrFormat))
	assert.Nil(t, series, "no partial result on format errors")
}

func TestGetWaveformRejectsUnknownCompression(t *testing.T) {
	finder, dc := testFixtures()
	seg := testSegment("SHZ", 100)
	seg.Chunks[0].Compression = 99
	dc.segments["SHZ"] = []models.Segment{seg}

	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SHZ", Start: start, End: end,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnsupportedFormat))
	assert.Nil(t, series)
}

func TestGetWaveformValidatesDecodedLength(t *testing.T) {
	finder, dc := testFixtures()
	logger, _ := test.NewNullLogger()
	cli := NewFromServices(finder, dc, &fakeDecoder{short: 1}, logger)
	start, end := wholeWindow()

	_, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SHZ", Start: start, End: end,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestGetWaveformFetchResponseWildcard(t *testing.T) {
	finder, dc := testFixtures()
	cli, hook := newTestClient(finder, dc)
	start, end := wholeWindow()

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SH*",
		Start: start, End: end,
		FetchResponse: true,
	})
	require.NoError(t, err)
	require.Len(t, series, 3)

	warned := false
	for _, e := range hook.Entries {
		if e.Message == "wildcard in channel code, looking up the Z component response" {
			warned = true
		}
	}
	assert.True(t, warned)

	for _, ts := range series {
		require.NotNil(t, ts.PAZ)
		assert.Equal(t, 0.4, ts.PAZ.Gain)
		assert.Equal(t, 6.0e8, ts.PAZ.Sensitivity)
	}

	// Attached records are deep copies, not shared.
	series[0].PAZ.Poles[0] = complex(1, 1)
	assert.NotEqual(t, series[0].PAZ.Poles[0], series[1].PAZ.Poles[0])
}

func TestGetWaveformFetchResponseBandWildcard(t *testing.T) {
	finder, dc := testFixtures()
	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	_, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "*",
		Start: start, End: end,
		FetchResponse: true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrConfig))
}

func TestGetWaveformFetchCoordinates(t *testing.T) {
	finder, dc := testFixtures()
	cli, _ := newTestClient(finder, dc)
	start, end := wholeWindow()

	series, err := cli.GetWaveform(context.Background(), WaveformRequest{
		Network: "GE", Station: "APE", Channel: "SHZ",
		Start: start, End: end,
		FetchCoordinates: true,
	})
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.NotNil(t, series[0].Coordinates)
	assert.Equal(t, 37.07, series[0].Coordinates.Latitude)
	assert.Equal(t, 25.53, series[0].Coordinates.Longitude)
	assert.Equal(t, 620.0, series[0].Coordinates.Elevation)
}

func TestExpandChannel(t *testing.T) {
	assert.Equal(t, []string{"SHZ", "SHN", "SHE"}, expandChannel("SH*"))
	assert.Equal(t, []string{"BHZ"}, expandChannel("BHZ"))
	assert.Equal(t, []string{"*"}, expandChannel("*"), "band wildcards do not expand")
	assert.Equal(t, []string{"S*Z"}, expandChannel("S*Z"), "only the component position expands")
}

func TestSamplingRate(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		power    int
		multi    float64
		exponent int
		points   int
		want     float64
	}{
		{"30000 points over 300s", 300, 0, 1, 1, 30000, 100.0},
		{"reciprocal interval encoding", 1, -2, 1, -1, 30000, 300.0},
		{"600s at 50Hz", 600, 0, 1, 1, 30000, 50.0},
		{"millisecond multi factor", 3, 0, 100, 1, 30000, 100.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := models.Segment{
				NumPoints: tt.points,
				Interval: models.Quantity{
					Value: tt.value,
					Units: models.UnitDesc{Base: models.UnitSecond, Power: tt.power, MultiFactor: tt.multi, Exponent: tt.exponent},
				},
			}
			rate, err := samplingRate(seg)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, rate, 1e-9)
		})
	}
}

func TestSamplingRateRejectsNonSecondUnit(t *testing.T) {
	seg := models.Segment{
		NumPoints: 100,
		Interval: models.Quantity{
			Value: 1,
			Units: models.UnitDesc{Base: models.UnitMeter, MultiFactor: 1, Exponent: 1},
		},
	}
	_, err := samplingRate(seg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrFormat))
}
