package cli_test

import (
	"bytes"
	"testing"

	"github.com/rshade/varbrowse/internal/cli"
	"github.com/rshade/varbrowse/internal/config"
)

// setupCLITest isolates the config home and project dir and resets global state.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvCacheDir, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeRoot runs the root command with args and returns stdout and stderr.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
