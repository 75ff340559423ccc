package main

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/clock"
	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/Zachkp/portfolio/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the theme reveal animation in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		themes, err := cfg.ThemeSet()
		if err != nil {
			return err
		}
		opts := cfg.AnimationOptions()
		opts.Logger = logger
		ctrl := theme.NewController(themes, clock.Real(), opts)
		return tui.Run(ctrl, cfg.FrameInterval())
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
