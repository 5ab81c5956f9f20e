package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/openseis/waveclient/internal/client"
	"github.com/openseis/waveclient/internal/codec/steim"
	"github.com/openseis/waveclient/internal/config"
)

// Command waveclient retrieves seismic waveforms and station metadata from
// a remote directory/data-center pair and prints a summary of the result.
//
// Usage:
//
//	waveclient [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (default "config.yaml")
//	-network, -station, -location, -channel string
//	      channel selection; "*" in the third channel position expands
//	      to the Z, N and E components
//	-start, -end string
//	      RFC 3339 time window
//	-paz, -coordinates
//	      attach response / coordinate metadata to each series
func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "path to config file")
		network     = flag.String("network", "GE", "network code")
		station     = flag.String("station", "APE", "station code")
		location    = flag.String("location", "", "location code")
		channel     = flag.String("channel", "SHZ", "channel code")
		startFlag   = flag.String("start", "", "window start (RFC 3339)")
		endFlag     = flag.String("end", "", "window end (RFC 3339)")
		fetchPAZ    = flag.Bool("paz", false, "attach pole-zero response metadata")
		fetchCoords = flag.Bool("coordinates", false, "attach coordinate metadata")
	)
	flag.Parse()

	// Optional .env for $VARS referenced by the config file.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	configureLogger(logger, cfg.Logging)

	start, end, err := parseWindow(*startFlag, *endFlag)
	if err != nil {
		logger.Fatalf("Invalid time window: %v", err)
	}

	ctx := context.Background()
	cli, err := client.New(ctx, cfg, steim.New(), logger)
	if err != nil {
		logger.Fatalf("Failed to initialize client: %v", err)
	}

	series, err := cli.GetWaveform(ctx, client.WaveformRequest{
		Network:          *network,
		Station:          *station,
		Location:         *location,
		Channel:          *channel,
		Start:            start,
		End:              end,
		FetchResponse:    *fetchPAZ,
		FetchCoordinates: *fetchCoords,
	})
	if err != nil {
		logger.Fatalf("Retrieval failed: %v", err)
	}

	fmt.Printf("%d series\n", len(series))
	for _, ts := range series {
		fmt.Printf("%s | %s - %s | %.1f Hz, %d samples\n",
			ts.Channel,
			ts.StartTime.UTC().Format(time.RFC3339),
			ts.EndTime().UTC().Format(time.RFC3339),
			ts.SamplingRate,
			ts.NumPoints,
		)
		if ts.Coordinates != nil {
			fmt.Printf("  coordinates: lat %.4f lon %.4f elev %.1f m\n",
				ts.Coordinates.Latitude, ts.Coordinates.Longitude, ts.Coordinates.Elevation)
		}
		if ts.PAZ != nil {
			fmt.Printf("  response: %d poles, %d zeros, gain %g, sensitivity %g\n",
				len(ts.PAZ.Poles), len(ts.PAZ.Zeros), ts.PAZ.Gain, ts.PAZ.Sensitivity)
		}
	}
}

func configureLogger(logger *logrus.Logger, cfg config.LoggingConfig) {
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)
}

func parseWindow(startFlag, endFlag string) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	start := end.Add(-10 * time.Minute)
	if startFlag != "" {
		var err error
		if start, err = time.Parse(time.RFC3339, startFlag); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endFlag != "" {
		var err error
		if end, err = time.Parse(time.RFC3339, endFlag); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start must be before end")
	}
	return start, end, nil
}
