package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
	"github.com/lehigh-university-libraries/labelgrid/internal/plotting"
)

func newGridCmd() *cobra.Command {
	var flags galleryFlags
	var maxImages int
	var noLabels bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the first images in a single grid",
		Long: `Renders the first --max-images images in one grid, each captioned with its
label. With --no-labels images are captioned with their position instead.`,
		Example: `  # First 30 images of a manifest
  labelgrid grid --manifest images.csv -o grid.html

  # First 100 images, self-contained
  labelgrid grid --manifest images.parquet --max-images 100 --force-b64 -o grid.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.prepare(cmd)
			if err != nil {
				return err
			}

			var ls []labels.Label
			if !noLabels {
				ls = r.manifest.Labels()
			}

			res, err := r.plotter.PlotImages(cmd.Context(), r.manifest.Items(), ls, plotting.GridOptions{MaxImages: maxImages})
			if err != nil {
				return err
			}
			return r.finish(res)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&maxImages, "max-images", 0, "Maximum number of images to show (default 30)")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "Caption images with their position instead of their label")

	return cmd
}
