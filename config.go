package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
)

var configOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// The file may not exist or parse yet, so skip loading it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `init writes the default settings to the file named by --config, or
portfolio.toml in the working directory. An existing file is kept unless
--force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := writeDefaultConfig(globalOpts.configPath, configOpts.force)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// writeDefaultConfig saves config.DefaultConfig to path and returns the path written.
func writeDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		path = config.DefaultConfigFile
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
