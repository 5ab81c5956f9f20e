package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
directory:
  address: "dmc.example.org:6371/NameService"
  network_dc:
    path: "/de/gfz"
    name: "GFZ_NetworkDC"
  data_center:
    path: "/de/gfz"
    name: "GFZ_DataCenter"
  cache_size: 64

transport:
  timeout_seconds: 10
  rate_limit: 2.5
  rate_limit_burst: 5

logging:
  level: "debug"
  format: "text"
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dmc.example.org:6371/NameService", config.Directory.Address)
	assert.Equal(t, "/de/gfz", config.Directory.NetworkDC.Path)
	assert.Equal(t, "GFZ_NetworkDC", config.Directory.NetworkDC.Name)
	assert.Equal(t, "GFZ_DataCenter", config.Directory.DataCenter.Name)
	assert.Equal(t, 64, config.Directory.CacheSize)
	assert.Equal(t, 10, config.Transport.TimeoutSeconds)
	assert.Equal(t, 2.5, config.Transport.RateLimit)
	assert.Equal(t, 5, config.Transport.RateLimitBurst)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
directory:
  address: "dmc.example.org:6371"
`)

	config, err := Load(path)
	require.NoError(t, err)

	// Everything but the address falls back to the IRIS defaults.
	assert.Equal(t, "/edu/iris/dmc", config.Directory.NetworkDC.Path)
	assert.Equal(t, "IRIS_NetworkDC", config.Directory.NetworkDC.Name)
	assert.Equal(t, "IRIS_DataCenter", config.Directory.DataCenter.Name)
	assert.Equal(t, 128, config.Directory.CacheSize)
	assert.Equal(t, 30, config.Transport.TimeoutSeconds)
	assert.Equal(t, 5.0, config.Transport.RateLimit)
	assert.Equal(t, 10, config.Transport.RateLimitBurst)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

func TestLoadWithEnvExpansion(t *testing.T) {
	t.Setenv("WAVECLIENT_DIRECTORY_ADDRESS", "envhost:6371")

	path := writeConfig(t, `
directory:
  address: "$WAVECLIENT_DIRECTORY_ADDRESS"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "envhost:6371", config.Directory.Address)
}

func TestLoadRequiresDirectoryAddress(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "debug"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory.address")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
