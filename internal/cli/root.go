package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/varbrowse/internal/config"
	"github.com/rshade/varbrowse/internal/logging"
)

// annotationOwnsTerminal marks commands that run a full-screen TUI. Their logs
// go to a file so they do not draw over the screen.
const annotationOwnsTerminal = "owns-terminal"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the varbrowse CLI.
// It loads configuration, wires up logging and tracing, and adds the
// browse and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:           "varbrowse",
		Short:         "Browse genomic variants in a virtualized terminal grid",
		Long:          "varbrowse: a keyboard-driven variant table with a linked position track",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, configPath, projectDir)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg.Logging)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: config.yaml in $VARBROWSE_HOME)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "directory holding a .varbrowse.yaml overlay")
	cmd.AddCommand(newBrowseCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse variants from local files
  varbrowse browse variants.yaml more.json

  # Browse a dataset from the GraphQL API, sorted by allele frequency
  varbrowse browse --endpoint https://gnomad.example/api --dataset gnomad_r4 --sort af:desc

  # Print the first 20 rows without the TUI
  varbrowse browse variants.yaml --plain --limit 20

  # Initialize configuration
  varbrowse config init`

// loadConfig reads the configuration file named by --config, or the default
// path, with the project overlay and environment applied.
func loadConfig(cmd *cobra.Command, path, projectFlag string) (*config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, wd)

	cfg, err := config.Load(path, projectDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
