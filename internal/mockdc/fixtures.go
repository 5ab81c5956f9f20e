package mockdc

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openseis/waveclient/internal/codec"
	"github.com/openseis/waveclient/internal/models"
)

// InstrumentFixture binds an instrumentation record to a channel.
type InstrumentFixture struct {
	Channel         models.ChannelID       `yaml:"channel"`
	Instrumentation models.Instrumentation `yaml:"instrumentation"`
}

// Fixtures is the data the simulated services serve.
type Fixtures struct {
	Networks    []models.Network            `yaml:"networks"`
	Stations    map[string][]models.Station `yaml:"stations"` // by network code
	Channels    []models.Channel            `yaml:"channels"`
	Instruments []InstrumentFixture         `yaml:"instruments"`
	Segments    []models.Segment            `yaml:"segments"`
}

// LoadFixtures reads fixtures from a YAML file.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return f, nil
}

// DefaultFixtures builds a small self-consistent network with one station
// and three STEIM1-compressed channels at 100 Hz.
func DefaultFixtures() Fixtures {
	const (
		network = "GE"
		station = "APE"
	)
	start := time.Date(2003, 6, 20, 6, 0, 0, 0, time.UTC)

	f := Fixtures{
		Networks: []models.Network{
			{ID: models.NetworkID{NetworkCode: network}, Name: "GEOFON simulation"},
		},
		Stations: map[string][]models.Station{
			network: {
				{
					ID:   models.StationID{StationCode: station},
					Name: "Apeiranthos simulation",
					Location: models.Location{
						Type:      models.LocationTypeGeographic,
						Latitude:  37.0689,
						Longitude: 25.5306,
						Elevation: models.Quantity{Value: 620.0, Units: models.UnitDesc{Base: models.UnitMeter}},
					},
					Effective: models.EffectiveTime{
						Start: start.AddDate(-10, 0, 0),
						End:   start.AddDate(10, 0, 0),
					},
				},
			},
		},
	}

	for _, component := range []string{"Z", "N", "E"} {
		id := models.ChannelID{
			NetworkCode:  network,
			StationCode:  station,
			LocationCode: models.BlankLocation,
			ChannelCode:  "SH" + component,
		}
		f.Channels = append(f.Channels, models.Channel{ID: id})
		f.Instruments = append(f.Instruments, InstrumentFixture{
			Channel: id,
			Instrumentation: models.Instrumentation{
				Response: models.InstrumentResponse{
					Stages: []models.Stage{{
						Type: "ANALOG",
						Filters: []models.Filter{{
							Type:  models.FilterTypePoleZero,
							Poles: []models.ComplexValue{{Real: -4.44, Imag: 4.44}, {Real: -4.44, Imag: -4.44}},
							Zeros: []models.ComplexValue{{Real: 0, Imag: 0}, {Real: 0, Imag: 0}},
						}},
						Normalizations: []models.Normalization{{AoFactor: 1.0, Frequency: 1.0}},
					}},
					Sensitivity: models.Sensitivity{Factor: 6.0e8, Frequency: 1.0},
				},
			},
		})
		f.Segments = append(f.Segments, synthSegment(id, start))
	}
	return f
}

// synthSegment builds a 600 s, 100 Hz STEIM1 segment of synthetic samples.
func synthSegment(id models.ChannelID, start time.Time) models.Segment {
	const numPoints = 60000
	samples := make([]int32, numPoints)
	for i := range samples {
		samples[i] = int32((i%200)-100) * 7
	}
	return models.Segment{
		Channel:   id,
		BeginTime: start,
		NumPoints: numPoints,
		Interval: models.Quantity{
			Value: 600,
			Units: models.UnitDesc{Base: models.UnitSecond, Power: 0, MultiFactor: 1, Exponent: 1},
		},
		Chunks: []models.Chunk{{
			Compression:  int32(codec.TagSteim1),
			LittleEndian: false,
			NumPoints:    numPoints,
			Data:         PackSteim1(samples),
		}},
	}
}
