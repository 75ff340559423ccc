package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reload the gallery and stage tables into the database",
	Long: `seed replaces the images and stages tables with the data compiled into
the binary. Visitor statistics are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Path == "" {
			return fmt.Errorf("no database configured (store.path)")
		}

		st, err := store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		images, stages := content.Images(), content.Stages()
		if err := st.Seed(cmd.Context(), images, stages); err != nil {
			return fmt.Errorf("seed %s: %w", cfg.Store.Path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d images and %d stages into %s\n",
			len(images), len(stages), cfg.Store.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
