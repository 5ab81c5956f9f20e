// Package mockdc simulates the directory, network-metadata and waveform
// data services behind one HTTP server. It backs the integration tests and
// the cmd/mockdc development tool; it is not part of the client itself.
package mockdc

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openseis/waveclient/internal/models"
	"github.com/openseis/waveclient/internal/naming"
	"github.com/openseis/waveclient/internal/remote"
)

// Server serves all three simulated services from one gin engine.
type Server struct {
	fixtures Fixtures
	engine   *gin.Engine
	baseURL  string
}

// New builds a server over the given fixtures.
func New(fixtures Fixtures) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{fixtures: fixtures, engine: engine}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine { return s.engine }

// SetBaseURL sets the absolute URL under which this server is reachable.
// Directory replies embed it, so it must be set before the first resolve.
func (s *Server) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(base, "/")
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Directory service.
	s.engine.GET("/resolve", s.handleResolve)
	s.engine.GET("/netdc/finder", s.handleFinderRef)

	// Network metadata service.
	s.engine.GET("/finder/networks", s.handleNetworks)
	s.engine.GET("/finder/networks/:code/stations", s.handleStations)
	s.engine.GET("/finder/networks/:code/channels", s.handleChannels)
	s.engine.GET("/finder/networks/:code/instrumentation", s.handleInstrumentation)

	// Waveform data service.
	s.engine.POST("/data/seismograms", s.handleSeismograms)
}

func (s *Server) handleResolve(c *gin.Context) {
	name := c.Query("name")
	switch {
	case strings.Contains(name, remote.CapabilityNetworkDC+"."+naming.KindInterface):
		c.JSON(http.StatusOK, naming.ObjectRef{
			Name:       name,
			Endpoint:   s.baseURL + "/netdc",
			Interfaces: []string{remote.CapabilityNetworkDC},
		})
	case strings.Contains(name, remote.CapabilityDataCenter+"."+naming.KindInterface):
		c.JSON(http.StatusOK, naming.ObjectRef{
			Name:       name,
			Endpoint:   s.baseURL + "/data",
			Interfaces: []string{remote.CapabilityDataCenter},
		})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "no such name"})
	}
}

func (s *Server) handleFinderRef(c *gin.Context) {
	c.JSON(http.StatusOK, naming.ObjectRef{
		Name:       "finder",
		Endpoint:   s.baseURL + "/finder",
		Interfaces: []string{remote.CapabilityNetworkFinder},
	})
}

func (s *Server) handleNetworks(c *gin.Context) {
	code := c.Query("code")
	networks := make([]models.Network, 0)
	for _, net := range s.fixtures.Networks {
		if code == "" || net.ID.NetworkCode == code {
			networks = append(networks, net)
		}
	}
	c.JSON(http.StatusOK, networks)
}

func (s *Server) handleStations(c *gin.Context) {
	stations := s.fixtures.Stations[c.Param("code")]
	if stations == nil {
		stations = []models.Station{}
	}
	c.JSON(http.StatusOK, stations)
}

func (s *Server) handleChannels(c *gin.Context) {
	var (
		network  = c.Param("code")
		station  = c.Query("station")
		location = c.Query("location")
		channel  = c.Query("channel")
	)
	channels := make([]models.Channel, 0)
	for _, ch := range s.fixtures.Channels {
		if ch.ID.NetworkCode != network || ch.ID.StationCode != station {
			continue
		}
		if location != "" && ch.ID.LocationCode != location {
			continue
		}
		if channel != "" && ch.ID.ChannelCode != channel {
			continue
		}
		channels = append(channels, ch)
	}
	c.JSON(http.StatusOK, channels)
}

func (s *Server) handleInstrumentation(c *gin.Context) {
	id := models.ChannelID{
		NetworkCode:  c.Param("code"),
		StationCode:  c.Query("station"),
		LocationCode: c.Query("location"),
		ChannelCode:  c.Query("channel"),
	}
	for _, inst := range s.fixtures.Instruments {
		if inst.Channel.NetworkCode == id.NetworkCode &&
			inst.Channel.StationCode == id.StationCode &&
			inst.Channel.ChannelCode == id.ChannelCode {
			c.JSON(http.StatusOK, inst.Instrumentation)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no instrumentation"})
}

func (s *Server) handleSeismograms(c *gin.Context) {
	var filters []remote.RequestFilter
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	segments := make([]models.Segment, 0)
	for _, f := range filters {
		for _, seg := range s.fixtures.Segments {
			if seg.Channel != f.Channel {
				continue
			}
			if overlaps(seg, f.Start, f.End) {
				segments = append(segments, seg)
			}
		}
	}
	c.JSON(http.StatusOK, segments)
}

func overlaps(seg models.Segment, start, end time.Time) bool {
	if seg.NumPoints == 0 {
		return true
	}
	return !seg.BeginTime.After(end) && !start.After(seg.BeginTime.Add(segmentSpan(seg)))
}

func segmentSpan(seg models.Segment) time.Duration {
	// Fixture segments always use SECOND intervals.
	units := seg.Interval.Units
	span := math.Pow(seg.Interval.Value*math.Pow(10, float64(units.Power))*units.MultiFactor, float64(units.Exponent))
	return time.Duration(span * float64(time.Second))
}
