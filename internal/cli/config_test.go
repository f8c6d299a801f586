package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/varbrowse/internal/cli"
	"github.com/rshade/varbrowse/internal/config"
)

func TestConfigInit_CreatesDefaultFile(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := executeRoot(t, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, "config.yaml")
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)

	cfg, err := config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, config.CurrentSchemaVersion, cfg.SchemaVersion)
	assert.Equal(t, "variant_id:asc", cfg.Grid.DefaultSort)
}

func TestConfigInit_ExistingFile(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  overscan: 4\n"), 0o600))

	_, _, err := executeRoot(t, "config", "init")
	require.ErrorIs(t, err, cli.ErrConfigExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "overscan: 4", "file is untouched without --force")

	_, _, err = executeRoot(t, "config", "init", "--force")
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "overscan: 10")
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)

	out, _, err := executeRoot(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Default sort: variant_id:asc")
	assert.Contains(t, out, "API endpoint: (not set, files only)")
	assert.Contains(t, out, "Row heights: table 2, track 1")
}

func TestConfigValidate_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, home string)
		expectErr error
		contains  string
	}{
		{
			name: "negative overscan from env",
			setup: func(t *testing.T, _ string) {
				t.Setenv(config.EnvOverscan, "-1")
			},
			expectErr: config.ErrInvalidOverscan,
		},
		{
			name: "unsortable default sort",
			setup: func(t *testing.T, home string) {
				writeConfig(t, home, "grid:\n  table_row_height: 2\n  track_row_height: 1\n  default_sort: flags\n")
			},
			expectErr: cli.ErrUnknownSortKey,
		},
		{
			name: "unsupported schema",
			setup: func(t *testing.T, home string) {
				writeConfig(t, home, "schema_version: \"9.0.0\"\n")
			},
			expectErr: config.ErrUnsupportedSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupCLITest(t)
			tt.setup(t, home)

			_, _, err := executeRoot(t, "config", "validate")
			require.Error(t, err)
			require.ErrorIs(t, err, tt.expectErr)
			assert.Contains(t, err.Error(), "configuration validation failed")
		})
	}
}

func TestRoot_ConfigFlag(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  dataset: custom_ds\n"), 0o600))

	out, _, err := executeRoot(t, "--config", path, "config", "validate", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset: custom_ds")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("grid: [\n"), 0o600))
	_, _, err = executeRoot(t, "--config", bad, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestRoot_Version(t *testing.T) {
	setupCLITest(t)
	out, _, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))
}
