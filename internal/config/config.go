// Package config loads the client configuration from YAML with environment
// variable expansion and viper-managed defaults.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/openseis/waveclient/internal/naming"
)

// Config holds all configuration for the waveform client.
type Config struct {
	Directory DirectoryConfig `mapstructure:"directory"`
	Transport TransportConfig `mapstructure:"transport"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DirectoryConfig is the entire external configuration surface of the
// client: one directory address and two service locators.
type DirectoryConfig struct {
	Address    string                `mapstructure:"address"`
	NetworkDC  naming.ServiceLocator `mapstructure:"network_dc"`
	DataCenter naming.ServiceLocator `mapstructure:"data_center"`
	CacheSize  int                   `mapstructure:"cache_size"`
}

type TransportConfig struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from a YAML file. $VARS in the file are expanded
// from the environment before parsing, so secrets and per-host addresses can
// stay out of the file itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewReader([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Directory.Address == "" {
		return nil, fmt.Errorf("directory.address is required")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("directory.network_dc.path", "/edu/iris/dmc")
	v.SetDefault("directory.network_dc.name", "IRIS_NetworkDC")
	v.SetDefault("directory.data_center.path", "/edu/iris/dmc")
	v.SetDefault("directory.data_center.name", "IRIS_DataCenter")
	v.SetDefault("directory.cache_size", 128)

	v.SetDefault("transport.timeout_seconds", 30)
	v.SetDefault("transport.rate_limit", 5.0)
	v.SetDefault("transport.rate_limit_burst", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
