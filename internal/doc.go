// Package waveclient implements a client for remote seismic waveform and
// station-metadata services reached through a directory/naming service.
//
// # Architecture
//
// The client is structured into several key packages:
//   - naming: directory resolution and capability narrowing
//   - remote: network-metadata and data-center capability clients
//   - remote/middlewares: outbound request ID, pacing, logging and metrics
//   - codec: seam to the waveform decompression collaborator
//   - client: request shaping, series assembly and metadata enrichment
//   - mockdc: service simulator for development and integration tests
//
// Control flow is strictly synchronous and linear: resolve the services once
// at construction, then per request resolve channels, retrieve segments,
// decode chunks, assemble and trim one series per channel, and optionally
// enrich it with response or coordinate metadata.
//
// Example usage:
//
//	cli, err := client.New(ctx, cfg, steim.New(), logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	series, err := cli.GetWaveform(ctx, client.WaveformRequest{
//	    Network: "GE", Station: "APE", Channel: "SH*",
//	    Start: start, End: end,
//	})
package waveclient
