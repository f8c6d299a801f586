package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/varbrowse/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file, the project
overlay and VARBROWSE_* environment variables.

This includes:
- Schema version compatibility
- Grid row heights, overscan and default sort
- Cache TTL bounds
- Logging level and format`,
		Example: `  # Validate current configuration
  varbrowse config validate

  # Validate and show detailed information
  varbrowse config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := parseSort(cfg.Grid.DefaultSort); err != nil {
		return fmt.Errorf("configuration validation failed: grid.default_sort: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Schema version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  Overscan: %d\n", cfg.Grid.Overscan)
	cmd.Printf("  Row heights: table %d, track %d\n", cfg.Grid.TableRowHeight, cfg.Grid.TrackRowHeight)
	cmd.Printf("  Default sort: %s\n", cfg.Grid.DefaultSort)

	if cfg.API.Endpoint == "" {
		cmd.Println("  API endpoint: (not set, files only)")
	} else {
		cmd.Printf("  API endpoint: %s\n", cfg.API.Endpoint)
	}
	cmd.Printf("  Dataset: %s\n", cfg.API.Dataset)

	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: %s (ttl %s)\n", cfg.Cache.Directory, cfg.Cache.TTL)
	} else {
		cmd.Println("  Cache: disabled")
	}

	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
