package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/varbrowse/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		SchemaVersion: "1.0.0",
		Grid: config.GridConfig{
			Overscan:       10,
			TableRowHeight: 2,
			TrackRowHeight: 1,
			DefaultSort:    "variant_id:asc",
		},
		API: config.APIConfig{
			Endpoint: "https://example.org/api",
			Dataset:  "gnomad_r4",
			Timeout:  30 * time.Second,
		},
		Cache: config.CacheConfig{
			Enabled:   true,
			Directory: "/tmp/cache",
			TTL:       time.Hour,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
api:
  dataset: gnomad_r2_1
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "gnomad_r2_1", target.API.Dataset)
	// The whole section is replaced, so unset fields are zeroed.
	assert.Empty(t, target.API.Endpoint)
	assert.Zero(t, target.API.Timeout)

	assert.Equal(t, 10, target.Grid.Overscan)
	assert.Equal(t, "info", target.Logging.Level)
	assert.True(t, target.Cache.Enabled)
}

func TestShallowMergeYAML_MultipleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
grid:
  overscan: 4
  table_row_height: 3
  track_row_height: 1
  default_sort: af:desc
cache:
  enabled: false
logging:
  level: debug
  format: json
  file: /tmp/varbrowse.log
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, config.GridConfig{
		Overscan: 4, TableRowHeight: 3, TrackRowHeight: 1, DefaultSort: "af:desc",
	}, target.Grid)
	assert.False(t, target.Cache.Enabled)
	assert.Equal(t, config.LoggingConfig{Level: "debug", Format: "json", File: "/tmp/varbrowse.log"}, target.Logging)
	assert.Equal(t, "gnomad_r4", target.API.Dataset)
}

func TestShallowMergeYAML_DurationValues(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
cache:
  enabled: true
  directory: /var/cache/vb
  ttl: 15m
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, 15*time.Minute, target.Cache.TTL)
	assert.Equal(t, "/var/cache/vb", target.Cache.Directory)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"comment only": "# nothing to see\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newDefaultTarget()
			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, newDefaultTarget(), target)
		})
	}
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  foo: bar
logging:
  level: warn
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "warn", target.Logging.Level)
	assert.Equal(t, 10, target.Grid.Overscan)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("corrupted YAML", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "grid: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing overlay YAML")
	})

	t.Run("wrong section type", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "grid:\n  overscan: lots\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"grid"`)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, writeOverlay(t, "")))
	})
}
