package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/labelgrid/internal/images"
	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
)

var (
	fragments = template.Must(template.New("fragments").Parse(fragmentTemplate))
	page      = template.Must(template.New("page").Parse(pageTemplate))
)

// SourceResolver produces <img src> values. inline reports a data URI.
type SourceResolver interface {
	Source(ctx context.Context, item any, forceB64 bool, targetWidth int) (src string, inline bool, err error)
}

// Cell is one captioned thumbnail of a flat grid.
type Cell struct {
	Label labels.Label
	Item  labels.Item
	// Index is shown under the label, usually the item's input position.
	Index int
}

// Renderer assembles gallery markup.
type Renderer struct {
	resolver SourceResolver
	newID    func() string
}

// New returns a renderer resolving image sources with resolver.
func New(resolver SourceResolver) *Renderer {
	return &Renderer{
		resolver: resolver,
		newID:    uuid.NewString,
	}
}

type cellView struct {
	ZoomID  string
	Src     any
	Alt     string
	Caption string
	Sub     string
}

type tabView struct {
	InputID string
	PanelID string
	Title   string
	Checked bool
	Cells   []cellView
}

type tabsView struct {
	RootID string
	CSS    template.CSS
	Tabs   []tabView
}

type flatView struct {
	RootID string
	CSS    template.CSS
	Cells  []cellView
}

// Tabs renders one tab per group; the first tab starts selected.
func (r *Renderer) Tabs(ctx context.Context, groups []labels.Group, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	root := "lg-" + r.newID()
	view := tabsView{RootID: root, Tabs: make([]tabView, 0, len(groups))}

	var css strings.Builder
	css.WriteString(scopedCSS(root, opts))

	for i, g := range groups {
		tab := tabView{
			InputID: fmt.Sprintf("%s-tab-%d", root, i),
			PanelID: fmt.Sprintf("%s-panel-%d", root, i),
			Title:   fmt.Sprintf("%s (%d/%d)", g.Label, len(g.Items), g.Total),
			Checked: i == 0,
			Cells:   make([]cellView, 0, len(g.Items)),
		}
		for j, item := range g.Items {
			cell, err := r.cell(ctx, fmt.Sprintf("%s-%d", tab.PanelID, j), item, g.Label.String(), fmt.Sprintf("#%d", j), opts)
			if err != nil {
				return "", err
			}
			tab.Cells = append(tab.Cells, cell)
		}
		fmt.Fprintf(&css, "#%s:checked ~ #%s { display: block; }\n", tab.InputID, tab.PanelID)
		view.Tabs = append(view.Tabs, tab)
	}
	view.CSS = template.CSS(css.String())

	return execute("tabs", view)
}

// Grid renders cells in a single wrapping grid.
func (r *Renderer) Grid(ctx context.Context, cells []Cell, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	root := "lg-" + r.newID()
	view := flatView{
		RootID: root,
		CSS:    template.CSS(scopedCSS(root, opts)),
		Cells:  make([]cellView, 0, len(cells)),
	}
	for i, c := range cells {
		cell, err := r.cell(ctx, fmt.Sprintf("%s-%d", root, i), c.Item, c.Label.String(), strconv.Itoa(c.Index), opts)
		if err != nil {
			return "", err
		}
		view.Cells = append(view.Cells, cell)
	}

	return execute("flat", view)
}

func (r *Renderer) cell(ctx context.Context, id string, item labels.Item, caption, sub string, opts Options) (cellView, error) {
	src, inline, err := r.resolver.Source(ctx, item, opts.ForceB64, opts.encodeWidth())
	if err != nil {
		return cellView{}, fmt.Errorf("failed to resolve image for %s %s: %w", caption, sub, err)
	}
	view := cellView{
		ZoomID:  id + "-zoom",
		Src:     src,
		Alt:     images.Describe(item),
		Caption: caption,
		Sub:     sub,
	}
	// data URIs are rejected by the template's URL filter unless trusted.
	if inline {
		view.Src = template.URL(src)
	}
	return view, nil
}

// Page wraps a rendered fragment into a standalone HTML document.
func Page(title, fragment string) (string, error) {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(fragment),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

func scopedCSS(root string, opts Options) string {
	return fmt.Sprintf(baseCSS, root, opts.ImgWidth, strconv.FormatFloat(opts.ZoomScale, 'f', -1, 64))
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
