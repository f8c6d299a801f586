package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome         = "VARBROWSE_HOME"
	EnvEndpoint     = "VARBROWSE_API_ENDPOINT"
	EnvDataset      = "VARBROWSE_DATASET"
	EnvOverscan     = "VARBROWSE_OVERSCAN"
	EnvCacheEnabled = "VARBROWSE_CACHE_ENABLED"
	EnvCacheDir     = "VARBROWSE_CACHE_DIR"
	EnvCacheTTL     = "VARBROWSE_CACHE_TTL"
	EnvLogLevel     = "VARBROWSE_LOG_LEVEL"
	EnvLogFormat    = "VARBROWSE_LOG_FORMAT"
	EnvLogFile      = "VARBROWSE_LOG_FILE"
)

// ApplyEnv overrides c with any VARBROWSE_* variables that are set.
// A variable that cannot be parsed is an error naming the variable.
func (c *Config) ApplyEnv() error {
	setString(&c.API.Endpoint, EnvEndpoint)
	setString(&c.API.Dataset, EnvDataset)
	setString(&c.Cache.Directory, EnvCacheDir)
	setString(&c.Logging.Level, EnvLogLevel)
	setString(&c.Logging.Format, EnvLogFormat)
	setString(&c.Logging.File, EnvLogFile)

	if v := os.Getenv(EnvOverscan); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvOverscan, v, err)
		}
		c.Grid.Overscan = n
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvCacheEnabled, v, err)
		}
		c.Cache.Enabled = b
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvCacheTTL, v, err)
		}
		c.Cache.TTL = d
	}
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
