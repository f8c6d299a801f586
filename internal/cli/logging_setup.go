package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/varbrowse/internal/config"
	"github.com/rshade/varbrowse/internal/logging"
)

// defaultLogFile is used when a full-screen command runs without a configured
// log file.
const defaultLogFile = "varbrowse.log"

// setupLogging configures logging from the logging section and CLI flags, and
// stores the logger and a trace id in the command context.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig) logging.LogPathResult {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		if loggingCfg.File == "" {
			loggingCfg.Format = logging.FormatConsole
		}
	}

	// A TUI owns the terminal, so records must not go to stderr.
	if loggingCfg.File == "" && ownsTerminal(cmd) {
		if dir, err := config.Dir(); err == nil {
			loggingCfg.File = filepath.Join(dir, "logs", defaultLogFile)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// ownsTerminal reports whether cmd will run a full-screen TUI.
func ownsTerminal(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationOwnsTerminal] != "true" {
		return false
	}
	if plain, err := cmd.Flags().GetBool("plain"); err == nil && plain {
		return false
	}
	return stdoutIsTerminal(cmd)
}

// cleanupLogging closes the log file handle.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
