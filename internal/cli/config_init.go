package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/varbrowse/internal/config"
)

// ErrConfigExists is returned when init would overwrite a configuration file.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates config.yaml in $VARBROWSE_HOME, or in the varbrowse directory of the
user configuration directory, with the default grid, API, cache and logging settings.

In a terminal you are asked before an existing file is replaced.`,
		Example: `  # Create configuration
  varbrowse config init

  # Create configuration, overwriting existing
  varbrowse config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}

	if !force {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			if !stdoutIsTerminal(cmd) {
				return ErrConfigExists
			}
			if res := ConfirmOverwrite(cmd.OutOrStdout(), cmd.InOrStdin(), path); !res.Accepted {
				cmd.Println("Aborted.")
				return nil
			}
		case !os.IsNotExist(statErr):
			return fmt.Errorf("cannot access config path %s: %w", path, statErr)
		}
	}

	if err := config.New().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Debug().Ctx(cmd.Context()).Str("path", path).Msg("configuration written")
	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)

	return nil
}
