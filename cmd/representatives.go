package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/labelgrid/internal/plotting"
)

func newRepresentativesCmd() *cobra.Command {
	var flags galleryFlags
	var ignore []string
	var order []string

	cmd := &cobra.Command{
		Use:     "representatives",
		Aliases: []string{"reps"},
		Short:   "Show the first image of every label",
		Long: `Renders one image per label: the first image in input order carrying it.
Labels in the ignore list (by default "-1" and "unknown") are left out.`,
		Example: `  # Overview of every cluster except the noise cluster
  labelgrid representatives --manifest clusters.jsonl -o overview.html

  # Ignore nothing, custom order
  labelgrid reps --dir ./classes --ignore "" --order zebra,ant`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.prepare(cmd)
			if err != nil {
				return err
			}

			texts := r.settings.Ignore
			if cmd.Flags().Changed("ignore") {
				texts = ignore
			}
			opts := plotting.RepresentativeOptions{
				Ignore: r.manifest.ResolveAll(nonNil(texts)),
			}
			if cmd.Flags().Changed("order") {
				opts.Order = r.manifest.ResolveAll(order)
			}

			res, err := r.plotter.PlotClassRepresentations(cmd.Context(), r.manifest.Items(), r.manifest.Labels(), opts)
			if err != nil {
				return err
			}
			return r.finish(res)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "Comma separated labels to leave out (default \"-1,unknown\")")
	cmd.Flags().StringSliceVar(&order, "order", nil, "Comma separated labels giving the display order")

	return cmd
}

// nonNil keeps an explicitly empty ignore list from falling back to defaults.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
