// Package config loads the varbrowse configuration file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/varbrowse/internal/grid"
	"github.com/rshade/varbrowse/internal/query/cache"
)

// CurrentSchemaVersion is written by `config init`.
const CurrentSchemaVersion = "1.0.0"

// supportedSchemas is the range of schema versions this build reads.
const supportedSchemas = ">= 1.0.0, < 2.0.0"

// Configuration file and directory names.
const (
	configFileName  = "config.yaml"
	projectFileName = ".varbrowse.yaml"
	appDirName      = "varbrowse"
)

// Validation errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported config schema version")
	ErrInvalidRowHeight  = errors.New("row height must be at least 1")
	ErrInvalidOverscan   = errors.New("overscan must be >= 0")
)

// Config is the root of config.yaml.
type Config struct {
	SchemaVersion string        `yaml:"schema_version"`
	Grid          GridConfig    `yaml:"grid"`
	API           APIConfig     `yaml:"api"`
	Cache         CacheConfig   `yaml:"cache"`
	Logging       LoggingConfig `yaml:"logging"`
}

// GridConfig tunes the variant grids.
type GridConfig struct {
	Overscan       int    `yaml:"overscan"`
	TableRowHeight int    `yaml:"table_row_height"`
	TrackRowHeight int    `yaml:"track_row_height"`
	DefaultSort    string `yaml:"default_sort"`
}

// APIConfig points at the GraphQL service.
type APIConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Dataset  string        `yaml:"dataset"`
	Timeout  time.Duration `yaml:"timeout"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Directory string        `yaml:"directory"`
	TTL       time.Duration `yaml:"ttl"`
}

// New returns the default configuration.
func New() *Config {
	cacheDir := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, appDirName)
	}

	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		Grid: GridConfig{
			Overscan:       grid.DefaultOverscan,
			TableRowHeight: 2,
			TrackRowHeight: 1,
			DefaultSort:    "variant_id:asc",
		},
		API: APIConfig{
			Dataset: "gnomad_r4",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Directory: cacheDir,
			TTL:       cache.DefaultTTL,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the user configuration at path on top of the defaults, then a
// project overlay (.varbrowse.yaml in projectDir) when one exists, then the
// environment. A missing user file is not an error.
func Load(path, projectDir string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if projectDir != "" {
		overlay := filepath.Join(projectDir, projectFileName)
		if _, statErr := os.Stat(overlay); statErr == nil {
			if err := ShallowMergeYAML(cfg, overlay); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the schema version.
func (c *Config) Validate() error {
	if err := CheckSchemaVersion(c.SchemaVersion); err != nil {
		return err
	}
	if c.Grid.Overscan < 0 {
		return fmt.Errorf("grid.overscan %d: %w", c.Grid.Overscan, ErrInvalidOverscan)
	}
	if c.Grid.TableRowHeight < 1 {
		return fmt.Errorf("grid.table_row_height %d: %w", c.Grid.TableRowHeight, ErrInvalidRowHeight)
	}
	if c.Grid.TrackRowHeight < 1 {
		return fmt.Errorf("grid.track_row_height %d: %w", c.Grid.TrackRowHeight, ErrInvalidRowHeight)
	}
	if c.Grid.DefaultSort != "" {
		if _, err := grid.ParseSortExpression(c.Grid.DefaultSort); err != nil {
			return fmt.Errorf("grid.default_sort: %w", err)
		}
	}
	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
	}
	return c.Logging.Validate()
}

// CheckSchemaVersion reports whether version is readable by this build.
// An empty version is treated as current.
func CheckSchemaVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchemas)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedSchema, v, supportedSchemas)
	}
	return nil
}

// Save writes c to path, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Dir returns the configuration directory: $VARBROWSE_HOME, else the
// platform user config directory joined with "varbrowse".
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultPath returns the path of config.yaml inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
