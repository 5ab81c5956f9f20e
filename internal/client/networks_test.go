package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openseis/waveclient/internal/models"
)

func TestListNetworks(t *testing.T) {
	finder, dc := testFixtures()
	finder.networks = append(finder.networks, models.Network{ID: models.NetworkID{NetworkCode: "GR"}})
	cli, _ := newTestClient(finder, dc)

	codes, err := cli.ListNetworks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GE", "GR"}, codes)
}

func TestListStations(t *testing.T) {
	finder, dc := testFixtures()
	cli, _ := newTestClient(finder, dc)

	codes, err := cli.ListStations(context.Background(), "GE")
	require.NoError(t, err)
	assert.Equal(t, []string{"APE"}, codes)
}

func TestListStationsAllNetworks(t *testing.T) {
	finder, dc := testFixtures()
	finder.networks = append(finder.networks, models.Network{ID: models.NetworkID{NetworkCode: "GR"}})
	finder.stations["GR"] = []models.Station{{ID: models.StationID{StationCode: "GRA1"}}}
	cli, _ := newTestClient(finder, dc)

	codes, err := cli.ListStations(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"APE", "GRA1"}, codes)
}
