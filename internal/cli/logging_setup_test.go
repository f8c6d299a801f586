package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/varbrowse/internal/config"
	"github.com/rshade/varbrowse/internal/logging"
)

func newLoggingTestCmd(t *testing.T, annotations map[string]string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	var errOut bytes.Buffer
	cmd := &cobra.Command{Use: "test", Annotations: annotations}
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().Bool("plain", false, "")
	cmd.SetErr(&errOut)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetContext(context.Background())
	return cmd, &errOut
}

func TestSetupLogging_TraceIDInContext(t *testing.T) {
	cmd, _ := newLoggingTestCmd(t, nil)

	result := setupLogging(cmd, config.LoggingConfig{Level: "error", Format: "json"})
	t.Cleanup(func() { _ = cleanupLogging(&result) })

	assert.False(t, result.UsingFile)
	assert.NotEmpty(t, logging.TraceIDFromContext(cmd.Context()))
}

func TestSetupLogging_FileAndDebugMessage(t *testing.T) {
	cmd, errOut := newLoggingTestCmd(t, nil)
	require.NoError(t, cmd.Flags().Set("debug", "true"))
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	result := setupLogging(cmd, config.LoggingConfig{Level: "info", Format: "json", File: logFile})
	require.True(t, result.UsingFile)
	require.NoError(t, cleanupLogging(&result))

	assert.Equal(t, logFile, result.FilePath)
	assert.Contains(t, errOut.String(), logFile)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"command started"`)
}

func TestOwnsTerminal(t *testing.T) {
	cmd, _ := newLoggingTestCmd(t, map[string]string{annotationOwnsTerminal: "true"})
	assert.False(t, ownsTerminal(cmd), "a buffer is not a terminal")

	plain, _ := newLoggingTestCmd(t, nil)
	assert.False(t, ownsTerminal(plain))
}

func TestCleanupLogging_Nil(t *testing.T) {
	assert.NoError(t, cleanupLogging(nil))
}
