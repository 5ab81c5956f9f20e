// Package models holds the domain records exchanged with the remote
// metadata and data services, plus the assembled in-memory time series.
//
// All records are transient: they are built fresh per request and are never
// cached or persisted by this module.
package models

import (
	"strings"
	"time"
)

// BlankLocation is the sentinel for an empty location code. The metadata
// service stores unset locations as two spaces, not as an empty string.
const BlankLocation = "  "

// ChannelID identifies one channel of one station.
type ChannelID struct {
	NetworkCode  string `json:"network_code" yaml:"network_code"`
	StationCode  string `json:"station_code" yaml:"station_code"`
	LocationCode string `json:"location_code" yaml:"location_code"`
	ChannelCode  string `json:"channel_code" yaml:"channel_code"`
}

// String renders the conventional dotted form, e.g. "GE.APE..SHZ".
func (id ChannelID) String() string {
	return id.NetworkCode + "." + id.StationCode + "." +
		strings.TrimSpace(id.LocationCode) + "." + id.ChannelCode
}

// NormalizeLocation maps blank or empty location codes to BlankLocation.
func NormalizeLocation(location string) string {
	if strings.TrimSpace(location) == "" {
		return BlankLocation
	}
	return location
}

// UnitDesc describes a measurement unit as reported by the data service:
// base unit scaled by value*10^power*multi_factor and raised to exponent.
type UnitDesc struct {
	Base        string  `json:"base" yaml:"base"`
	Power       int     `json:"power" yaml:"power"`
	MultiFactor float64 `json:"multi_factor" yaml:"multi_factor"`
	Exponent    int     `json:"exponent" yaml:"exponent"`
}

// Quantity is a value paired with its unit description.
type Quantity struct {
	Value float64  `json:"value" yaml:"value"`
	Units UnitDesc `json:"units" yaml:"units"`
}

// Chunk is one compressed sub-unit of a segment.
//
// LittleEndian mirrors the wire flag: false means the payload words are big
// endian.
type Chunk struct {
	Compression  int32  `json:"compression" yaml:"compression"`
	LittleEndian bool   `json:"little_endian" yaml:"little_endian"`
	NumPoints    int    `json:"num_points" yaml:"num_points"`
	Data         []byte `json:"data" yaml:"data"`
}

// Segment is one contiguous run of waveform samples returned by the data
// service for a channel/time-range request. A segment with NumPoints == 0 is
// a keep-alive marker and carries no data.
type Segment struct {
	Channel   ChannelID `json:"channel_id" yaml:"channel_id"`
	BeginTime time.Time `json:"begin_time" yaml:"begin_time"`
	NumPoints int       `json:"num_points" yaml:"num_points"`
	Interval  Quantity  `json:"interval" yaml:"interval"`
	Chunks    []Chunk   `json:"chunks" yaml:"chunks"`
}

// EffectiveTime is the validity interval of a metadata record.
type EffectiveTime struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Contains reports whether t falls strictly inside the interval.
func (e EffectiveTime) Contains(t time.Time) bool {
	return e.Start.Before(t) && e.End.After(t)
}

// Unit base names reported by the remote services.
const (
	UnitSecond = "SECOND"
	UnitMeter  = "METER"
)

// LocationTypeGeographic is the only location kind this client understands.
const LocationTypeGeographic = "GEOGRAPHIC"

// Location is a station site as reported by the metadata service.
type Location struct {
	Type      string   `json:"type" yaml:"type"`
	Latitude  float64  `json:"latitude" yaml:"latitude"`
	Longitude float64  `json:"longitude" yaml:"longitude"`
	Elevation Quantity `json:"elevation" yaml:"elevation"`
}

// NetworkID wraps a network code.
type NetworkID struct {
	NetworkCode string `json:"network_code" yaml:"network_code"`
}

// Network is the attribute record of a seismic network.
type Network struct {
	ID   NetworkID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
}

// StationID wraps a station code.
type StationID struct {
	StationCode string `json:"station_code" yaml:"station_code"`
}

// Station is a station metadata record.
type Station struct {
	ID        StationID     `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Location  Location      `json:"location" yaml:"location"`
	Effective EffectiveTime `json:"effective_time" yaml:"effective_time"`
}

// Channel is a channel metadata record.
type Channel struct {
	ID ChannelID `json:"id" yaml:"id"`
}

// FilterTypePoleZero tags the pole-zero kind of calibration filter.
const FilterTypePoleZero = "POLEZERO"

// ComplexValue is a complex number on the wire.
type ComplexValue struct {
	Real float64 `json:"real" yaml:"real"`
	Imag float64 `json:"imag" yaml:"imag"`
}

// Filter is one sub-filter of a calibration stage. Only the pole-zero kind
// carries poles and zeros.
type Filter struct {
	Type  string         `json:"type" yaml:"type"`
	Poles []ComplexValue `json:"poles" yaml:"poles"`
	Zeros []ComplexValue `json:"zeros" yaml:"zeros"`
}

// Normalization holds the A0 normalization of a calibration stage.
type Normalization struct {
	AoFactor  float64 `json:"ao_factor" yaml:"ao_factor"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
}

// Stage is one calibration stage of an instrument response.
type Stage struct {
	Type           string          `json:"type" yaml:"type"`
	Filters        []Filter        `json:"filters" yaml:"filters"`
	Normalizations []Normalization `json:"normalizations" yaml:"normalizations"`
}

// Sensitivity is the overall sensitivity of an instrument response.
type Sensitivity struct {
	Factor    float64 `json:"factor" yaml:"factor"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
}

// InstrumentResponse is the calibration record of an instrument.
type InstrumentResponse struct {
	Stages      []Stage     `json:"stages" yaml:"stages"`
	Sensitivity Sensitivity `json:"sensitivity" yaml:"sensitivity"`
}

// Instrumentation is the instrument record effective at a given instant.
type Instrumentation struct {
	Response InstrumentResponse `json:"response" yaml:"response"`
}
