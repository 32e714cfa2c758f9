package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "labelgrid",
		Short: "Render labelled image collections as interactive HTML galleries",
		Long: `Labelgrid turns a list of images and their labels (classes, cluster ids)
into a single HTML page: one tab per label, a flat grid, or one
representative image per label. Click a thumbnail to zoom in.

Images are read from a manifest (.parquet, .jsonl, .yaml or .csv with
image and label columns) or from a directory with one sub-directory per label.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newTabsCmd())
	cmd.AddCommand(newGridCmd())
	cmd.AddCommand(newRepresentativesCmd())

	return cmd
}
