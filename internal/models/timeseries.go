package models

import (
	"math"
	"time"
)

// TimeSeries is one assembled, decoded run of samples for a single channel.
type TimeSeries struct {
	Channel      ChannelID
	StartTime    time.Time
	NumPoints    int
	SamplingRate float64 // Hz
	Samples      []int32

	// Optional enrichment, attached on request as deep copies.
	PAZ         *PAZ
	Coordinates *Coordinates
}

// EndTime returns the time of the last sample.
func (ts *TimeSeries) EndTime() time.Time {
	if ts.NumPoints == 0 || ts.SamplingRate <= 0 {
		return ts.StartTime
	}
	return ts.StartTime.Add(ts.sampleOffset(ts.NumPoints - 1))
}

// Trim cuts the series to the inclusive [start, end] window, adjusting
// StartTime and NumPoints. Samples exactly on either bound are kept.
func (ts *TimeSeries) Trim(start, end time.Time) {
	if len(ts.Samples) == 0 || ts.SamplingRate <= 0 {
		return
	}
	if start.After(ts.StartTime) {
		drop := int(math.Ceil(start.Sub(ts.StartTime).Seconds() * ts.SamplingRate))
		if drop >= len(ts.Samples) {
			ts.Samples = nil
			ts.NumPoints = 0
			ts.StartTime = start
			return
		}
		if drop > 0 {
			ts.Samples = ts.Samples[drop:]
			ts.StartTime = ts.StartTime.Add(ts.sampleOffset(drop))
		}
	}
	if end.Before(ts.StartTime) {
		ts.Samples = nil
		ts.NumPoints = 0
		return
	}
	keep := int(math.Floor(end.Sub(ts.StartTime).Seconds()*ts.SamplingRate)) + 1
	if keep < len(ts.Samples) {
		ts.Samples = ts.Samples[:keep]
	}
	ts.NumPoints = len(ts.Samples)
}

func (ts *TimeSeries) sampleOffset(n int) time.Duration {
	return time.Duration(float64(n) / ts.SamplingRate * float64(time.Second))
}

// PAZ is a normalized pole-zero instrument response.
type PAZ struct {
	Poles       []complex128
	Zeros       []complex128
	Gain        float64
	Sensitivity float64
}

// Clone returns a deep copy.
func (p *PAZ) Clone() *PAZ {
	if p == nil {
		return nil
	}
	out := &PAZ{
		Poles:       make([]complex128, len(p.Poles)),
		Zeros:       make([]complex128, len(p.Zeros)),
		Gain:        p.Gain,
		Sensitivity: p.Sensitivity,
	}
	copy(out.Poles, p.Poles)
	copy(out.Zeros, p.Zeros)
	return out
}

// Coordinates is the geographic position of a station.
type Coordinates struct {
	Latitude  float64
	Longitude float64
	Elevation float64 // meters
}

// Clone returns a copy.
func (c *Coordinates) Clone() *Coordinates {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
