package plotting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/labelgrid/internal/display"
	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
	"github.com/lehigh-university-libraries/labelgrid/internal/render"
)

// Mode names the kind of gallery a call produced.
type Mode string

const (
	ModeTabs            Mode = "tabs"
	ModeGrid            Mode = "grid"
	ModeRepresentatives Mode = "representatives"
)

// TabsOptions tune PlotClassTabs. A zero MaxPerTab uses the config default; a
// negative one renders every tab empty.
type TabsOptions struct {
	MaxPerTab int
	// Order lists the tabs to show; nil shows every label in natural order.
	Order []labels.Label
}

// GridOptions tune PlotImages. A zero MaxImages uses the config default.
type GridOptions struct {
	MaxImages int
}

// RepresentativeOptions tune PlotClassRepresentations.
type RepresentativeOptions struct {
	// Ignore lists labels to leave out. nil means the configured ignore list,
	// an empty non-nil slice ignores nothing.
	Ignore []labels.Label
	Order  []labels.Label
}

// Result describes what was handed to the sink.
type Result struct {
	Mode   Mode
	Groups []labels.Group
	Cells  []render.Cell
	// Ignored lists the labels left out of a representatives view, deduplicated
	// and in natural order.
	Ignored []labels.Label
	Markup  string
}

// Plotter validates inputs, selects images and sends the rendered gallery to
// a sink.
type Plotter struct {
	renderer *render.Renderer
	sink     display.Sink
	cfg      Config
}

func New(renderer *render.Renderer, sink display.Sink, cfg Config) *Plotter {
	return &Plotter{
		renderer: renderer,
		sink:     sink,
		cfg:      cfg,
	}
}

func (p *Plotter) Config() Config { return p.cfg }

// PlotClassTabs shows images in tabs, one per label, capped per tab.
func (p *Plotter) PlotClassTabs(ctx context.Context, items []labels.Item, ls []labels.Label, opts TabsOptions) (*Result, error) {
	if err := labels.CheckShape(len(items), len(ls)); err != nil {
		return nil, err
	}

	limit := opts.MaxPerTab
	if limit == 0 {
		limit = p.cfg.MaxImagesPerTab
	}

	groups, err := labels.GroupAndCap(items, ls, limit, opts.Order)
	if err != nil {
		return nil, err
	}
	slog.Debug("Grouped images into tabs", "items", len(items), "tabs", len(groups), "max_per_tab", limit)

	markup, err := p.renderer.Tabs(ctx, groups, p.cfg.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to render tabs: %w", err)
	}

	res := &Result{Mode: ModeTabs, Groups: groups}
	if err := p.show(ctx, res, markup); err != nil {
		return nil, err
	}
	return res, nil
}

// PlotImages shows the first images in a flat grid. Without labels every
// image is captioned with its position.
func (p *Plotter) PlotImages(ctx context.Context, items []labels.Item, ls []labels.Label, opts GridOptions) (*Result, error) {
	if ls == nil {
		ls = labels.Sequence(len(items))
	}

	limit := opts.MaxImages
	if limit == 0 {
		limit = p.cfg.MaxImages
	}

	shownItems, shownLabels, err := labels.Truncate(items, ls, limit)
	if err != nil {
		return nil, err
	}

	cells := make([]render.Cell, len(shownItems))
	for i := range shownItems {
		cells[i] = render.Cell{Label: shownLabels[i], Item: shownItems[i], Index: i}
	}
	slog.Debug("Selected images for grid", "items", len(items), "shown", len(cells), "max_images", limit)

	return p.grid(ctx, ModeGrid, cells)
}

// PlotClassRepresentations shows the first image of every label that is not
// ignored.
func (p *Plotter) PlotClassRepresentations(ctx context.Context, items []labels.Item, ls []labels.Label, opts RepresentativeOptions) (*Result, error) {
	if err := labels.CheckShape(len(items), len(ls)); err != nil {
		return nil, err
	}

	ignore := opts.Ignore
	if ignore == nil {
		ignore = p.cfg.IgnoreLabels
	}

	ignored := labels.NewSet(ignore...)
	reps, err := labels.SelectRepresentatives(items, ls, ignored, opts.Order)
	if err != nil {
		return nil, err
	}

	cells := make([]render.Cell, len(reps))
	for i, r := range reps {
		cells[i] = render.Cell{Label: r.Label, Item: r.Item, Index: r.Index}
	}
	slog.Debug("Selected class representatives", "items", len(items), "classes", len(cells), "ignored", ignored.Len())

	res, err := p.grid(ctx, ModeRepresentatives, cells)
	if err != nil {
		return nil, err
	}
	res.Ignored = ignored.Labels()
	return res, nil
}

func (p *Plotter) grid(ctx context.Context, mode Mode, cells []render.Cell) (*Result, error) {
	markup, err := p.renderer.Grid(ctx, cells, p.cfg.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to render grid: %w", err)
	}

	res := &Result{Mode: mode, Cells: cells}
	if err := p.show(ctx, res, markup); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Plotter) show(ctx context.Context, res *Result, markup string) error {
	if p.cfg.PageTitle != "" {
		var err error
		markup, err = render.Page(p.cfg.PageTitle, markup)
		if err != nil {
			return err
		}
	}
	res.Markup = markup

	if err := p.sink.Display(ctx, markup); err != nil {
		return fmt.Errorf("failed to display gallery: %w", err)
	}
	return nil
}
