package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/labelgrid/internal/plotting"
)

func newTabsCmd() *cobra.Command {
	var flags galleryFlags
	var maxPerTab int
	var order []string

	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "Show images in tabs, one tab per label",
		Long: `Groups images by label and renders one tab per label. Each tab shows the
first images of its label in input order, up to --max-per-tab.

Tabs appear in natural label order (numbers first, then text) unless --order
lists them explicitly; labels missing from the input are skipped.`,
		Example: `  # One tab per class directory
  labelgrid tabs --dir ./clusters --output clusters.html

  # Only show two classes, in this order, 5 images each
  labelgrid tabs --manifest labels.jsonl --order dog,cat --max-per-tab 5 -o pets.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.prepare(cmd)
			if err != nil {
				return err
			}

			opts := plotting.TabsOptions{MaxPerTab: maxPerTab}
			if cmd.Flags().Changed("max-per-tab") && maxPerTab <= 0 {
				// plotting reads zero as "use the default"
				opts.MaxPerTab = -1
			}
			if cmd.Flags().Changed("order") {
				opts.Order = r.manifest.ResolveAll(order)
			}

			res, err := r.plotter.PlotClassTabs(cmd.Context(), r.manifest.Items(), r.manifest.Labels(), opts)
			if err != nil {
				return err
			}
			return r.finish(res)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&maxPerTab, "max-per-tab", 0, "How many images to show per label, 0 lists the tabs without images (default 15)")
	cmd.Flags().StringSliceVar(&order, "order", nil, "Comma separated labels giving the tab order")

	return cmd
}
