package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/lehigh-university-libraries/labelgrid/internal/images"
	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
)

type fakeResolver struct {
	widths []int
	inline bool
	err    error
}

func (f *fakeResolver) Source(_ context.Context, item any, forceB64 bool, targetWidth int) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	f.widths = append(f.widths, targetWidth)
	if f.inline || forceB64 {
		return "data:image/png;base64,AAAA", true, nil
	}
	return fmt.Sprint(item), false, nil
}

func newTestRenderer(res SourceResolver) *Renderer {
	r := New(res)
	r.newID = func() string { return "test" }
	return r
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func TestTabs(t *testing.T) {
	groups := []labels.Group{
		{Label: labels.String("cat"), Items: []labels.Item{"a.jpg", "b.jpg"}, Total: 5},
		{Label: labels.Int(3), Items: []labels.Item{"c.jpg"}, Total: 1},
	}
	res := &fakeResolver{}

	markup, err := newTestRenderer(res).Tabs(context.Background(), groups, DefaultOptions())
	require.NoError(t, err)
	doc := parse(t, markup)

	tabLabels := findAll(doc, byClass("lg-tab-label"))
	require.Len(t, tabLabels, 2)
	assert.Equal(t, "cat (2/5)", text(tabLabels[0]))
	assert.Equal(t, "3 (1/1)", text(tabLabels[1]))

	inputs := findAll(doc, byClass("lg-tab-input"))
	require.Len(t, inputs, 2)
	assert.True(t, hasAttr(inputs[0], "checked"), "first tab should start selected")
	assert.False(t, hasAttr(inputs[1], "checked"))
	assert.Equal(t, attr(inputs[0], "name"), attr(inputs[1], "name"))

	panels := findAll(doc, byClass("lg-panel"))
	require.Len(t, panels, 2)
	imgs := findAll(panels[0], byTag("img"))
	require.Len(t, imgs, 2)
	assert.Equal(t, "a.jpg", attr(imgs[0], "src"))
	assert.Equal(t, "b.jpg", attr(imgs[1], "src"))

	assert.Contains(t, markup, "#lg-test-tab-1:checked ~ #lg-test-panel-1 { display: block; }")
	assert.Contains(t, markup, "transform: scale(2.5)")
	assert.Equal(t, []int{375, 375, 375}, res.widths)
}

func TestGridCaptionsAndInlineSources(t *testing.T) {
	cells := []Cell{
		{Label: labels.String("x"), Item: "a.png", Index: 0},
		{Label: labels.String("<y>"), Item: "b.png", Index: 4},
	}
	opts := Options{ImgWidth: 80, ZoomScale: 2, ForceB64: true}

	markup, err := newTestRenderer(&fakeResolver{}).Grid(context.Background(), cells, opts)
	require.NoError(t, err)
	doc := parse(t, markup)

	captions := findAll(doc, byClass("lg-caption"))
	require.Len(t, captions, 2)
	assert.Equal(t, "<y>", text(captions[1]), "labels are escaped, not interpreted")
	assert.NotContains(t, markup, "<y>")

	subs := findAll(doc, byClass("lg-sub"))
	assert.Equal(t, "4", text(subs[1]))

	for _, img := range findAll(doc, byTag("img")) {
		assert.Equal(t, "data:image/png;base64,AAAA", attr(img, "src"))
	}
	assert.Contains(t, markup, "width: 80px")
}

func TestGridLinksAwkwardFileNames(t *testing.T) {
	cells := []Cell{
		{Label: labels.String("cat"), Item: "shots/cat#1.png", Index: 0},
		{Label: labels.String("cat"), Item: "cat:2.png", Index: 1},
	}

	markup, err := newTestRenderer(images.NewResolver(nil)).Grid(context.Background(), cells, DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, markup, "ZgotmplZ")

	imgs := findAll(parse(t, markup), byTag("img"))
	require.Len(t, imgs, 2)
	assert.Equal(t, "shots/cat%231.png", attr(imgs[0], "src"))
	assert.Equal(t, "./cat:2.png", attr(imgs[1], "src"))
	assert.Equal(t, "cat#1.png", attr(imgs[0], "alt"))
}

func TestZoomCheckboxesAreUnique(t *testing.T) {
	cells := []Cell{
		{Label: labels.Int(0), Item: "a"},
		{Label: labels.Int(1), Item: "b"},
		{Label: labels.Int(2), Item: "c"},
	}
	markup, err := newTestRenderer(&fakeResolver{}).Grid(context.Background(), cells, DefaultOptions())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, n := range findAll(parse(t, markup), byClass("lg-zoom")) {
		id := attr(n, "id")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 3)
}

func TestSeparateRendersUseDistinctRoots(t *testing.T) {
	r := New(&fakeResolver{})
	a, err := r.Grid(context.Background(), nil, DefaultOptions())
	require.NoError(t, err)
	b, err := r.Grid(context.Background(), nil, DefaultOptions())
	require.NoError(t, err)

	rootA := findAll(parse(t, a), byClass("lg-root"))
	rootB := findAll(parse(t, b), byClass("lg-root"))
	require.Len(t, rootA, 1)
	require.Len(t, rootB, 1)
	assert.NotEqual(t, attr(rootA[0], "id"), attr(rootB[0], "id"))
}

func TestInvalidOptions(t *testing.T) {
	r := newTestRenderer(&fakeResolver{})

	_, err := r.Grid(context.Background(), nil, Options{ImgWidth: 0, ZoomScale: 1})
	assert.True(t, errors.Is(err, ErrInvalidOptions))

	_, err = r.Tabs(context.Background(), nil, Options{ImgWidth: 10, ZoomScale: 0})
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestResolverErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	cells := []Cell{{Label: labels.String("x"), Item: "a"}}

	_, err := newTestRenderer(&fakeResolver{err: boom}).Grid(context.Background(), cells, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestPage(t *testing.T) {
	out, err := Page("Cats & Dogs", `<div class="lg-root"></div>`)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Cats &amp; Dogs</title>")
	assert.Contains(t, out, `<div class="lg-root"></div>`)
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
