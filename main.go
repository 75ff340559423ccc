// Package main provides the portfolio server and its command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg        *config.Config
	logger     *slog.Logger
	globalOpts struct {
		verbose    bool
		configPath string
	}
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a circular-reveal theme toggle",
	Long: `portfolio serves a photo gallery and career stage cards over HTTP.

Clicking the page switches theme behind a circle that expands from the
click point. Running portfolio without a subcommand starts the server.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.configPath, "config", "c", "", "Config file (default: portfolio.toml)")
}

func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
