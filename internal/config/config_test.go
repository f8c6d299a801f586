package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/varbrowse/internal/config"
	"github.com/rshade/varbrowse/internal/logging"
)

// clearEnv unsets every override so tests start from the defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		config.EnvHome, config.EnvEndpoint, config.EnvDataset, config.EnvOverscan,
		config.EnvCacheEnabled, config.EnvCacheDir, config.EnvCacheTTL,
		config.EnvLogLevel, config.EnvLogFormat, config.EnvLogFile, config.EnvProjectDir,
	} {
		t.Setenv(name, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, config.CurrentSchemaVersion, cfg.SchemaVersion)
	assert.Equal(t, 10, cfg.Grid.Overscan)
	assert.Equal(t, 2, cfg.Grid.TableRowHeight)
	assert.Equal(t, 1, cfg.Grid.TrackRowHeight)
	assert.Equal(t, "variant_id:asc", cfg.Grid.DefaultSort)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoad_Layers(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	userPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(userPath, []byte(`
schema_version: 1.0.0
grid:
  overscan: 5
api:
  endpoint: https://user.example/api
  dataset: user_ds
`), 0o600))

	project := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(project, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, ".varbrowse.yaml"), []byte(`
api:
  endpoint: https://project.example/api
  dataset: project_ds
  timeout: 5s
`), 0o600))

	t.Setenv(config.EnvDataset, "env_ds")

	cfg, err := config.Load(userPath, project)
	require.NoError(t, err)

	// User file is merged field by field over the defaults.
	assert.Equal(t, 5, cfg.Grid.Overscan)
	assert.Equal(t, 2, cfg.Grid.TableRowHeight)
	// Project overlay replaces the api section, then the environment wins.
	assert.Equal(t, "https://project.example/api", cfg.API.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "env_ds", cfg.API.Dataset)
}

func TestLoad_ParseError(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [\n"), 0o600))

	_, err := config.Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvEndpoint, "https://env.example/api")
	t.Setenv(config.EnvOverscan, "3")
	t.Setenv(config.EnvCacheEnabled, "false")
	t.Setenv(config.EnvCacheTTL, "2h")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvLogFile, "/tmp/vb.log")

	cfg := config.New()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "https://env.example/api", cfg.API.Endpoint)
	assert.Equal(t, 3, cfg.Grid.Overscan)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/vb.log", cfg.Logging.File)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{env: config.EnvOverscan, value: "many"},
		{env: config.EnvCacheEnabled, value: "perhaps"},
		{env: config.EnvCacheTTL, value: "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, tt.value)

			err := config.New().ApplyEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		expectErr error
		contains  string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{
			name:      "negative overscan",
			mutate:    func(c *config.Config) { c.Grid.Overscan = -1 },
			expectErr: config.ErrInvalidOverscan,
		},
		{
			name:      "zero table row height",
			mutate:    func(c *config.Config) { c.Grid.TableRowHeight = 0 },
			expectErr: config.ErrInvalidRowHeight,
		},
		{
			name:      "zero track row height",
			mutate:    func(c *config.Config) { c.Grid.TrackRowHeight = 0 },
			expectErr: config.ErrInvalidRowHeight,
		},
		{
			name:     "bad default sort",
			mutate:   func(c *config.Config) { c.Grid.DefaultSort = "pos:sideways" },
			contains: "grid.default_sort",
		},
		{
			name:     "ttl out of range",
			mutate:   func(c *config.Config) { c.Cache.TTL = time.Second },
			contains: "cache.ttl",
		},
		{
			name: "ttl ignored when cache disabled",
			mutate: func(c *config.Config) {
				c.Cache.Enabled = false
				c.Cache.TTL = 0
			},
		},
		{
			name:     "bad log level",
			mutate:   func(c *config.Config) { c.Logging.Level = "loud" },
			contains: "logging.level",
		},
		{
			name:     "bad log format",
			mutate:   func(c *config.Config) { c.Logging.Format = "xml" },
			contains: "logging.format",
		},
		{
			name:      "future schema",
			mutate:    func(c *config.Config) { c.SchemaVersion = "2.1.0" },
			expectErr: config.ErrUnsupportedSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			switch {
			case tt.expectErr != nil:
				require.ErrorIs(t, err, tt.expectErr)
			case tt.contains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.contains)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckSchemaVersion(t *testing.T) {
	require.NoError(t, config.CheckSchemaVersion(""))
	require.NoError(t, config.CheckSchemaVersion("1.0.0"))
	require.NoError(t, config.CheckSchemaVersion("1.4.2"))
	require.ErrorIs(t, config.CheckSchemaVersion("0.9.0"), config.ErrUnsupportedSchema)
	require.ErrorIs(t, config.CheckSchemaVersion("not-a-version"), config.ErrUnsupportedSchema)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.API.Endpoint = "https://saved.example/api"
	cfg.Cache.TTL = 90 * time.Minute
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDir(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	dir, err := config.Dir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	assert.Equal(t, logging.Config{Level: "debug", Format: "json", Output: logging.OutputStderr}, lc.ToLoggingConfig())

	lc.File = "/tmp/vb.log"
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/vb.log", got.File)
}

func TestResolveProjectDir(t *testing.T) {
	ctx := context.Background()

	t.Run("flag wins over env", func(t *testing.T) {
		clearEnv(t)
		flagDir := t.TempDir()
		t.Setenv(config.EnvProjectDir, t.TempDir())

		assert.Equal(t, flagDir, config.ResolveProjectDir(ctx, flagDir, "/does/not/matter"))
	})

	t.Run("env", func(t *testing.T) {
		clearEnv(t)
		envDir := t.TempDir()
		t.Setenv(config.EnvProjectDir, envDir)

		assert.Equal(t, envDir, config.ResolveProjectDir(ctx, "", "/does/not/matter"))
	})

	t.Run("walk up", func(t *testing.T) {
		clearEnv(t)
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ".varbrowse.yaml"), []byte("{}\n"), 0o600))
		sub := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		got := config.ResolveProjectDir(ctx, "", sub)
		assert.Equal(t, root, got)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestFindProject_NotFound(t *testing.T) {
	_, err := config.FindProject(t.TempDir())
	require.ErrorIs(t, err, config.ErrNoProject)
}
