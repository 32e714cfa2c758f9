package plotting

import (
	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
	"github.com/lehigh-university-libraries/labelgrid/internal/render"
)

const (
	DefaultMaxImagesPerTab = 15
	DefaultMaxImages       = 30
)

var defaultIgnoreLabels = [...]string{"-1", "unknown"}

// DefaultIgnoreLabels returns the labels that mean "unlabelled" and are
// skipped by PlotClassRepresentations unless the caller says otherwise.
func DefaultIgnoreLabels() []labels.Label {
	return labels.Strings(defaultIgnoreLabels[:]...)
}

// Config holds the defaults a Plotter applies when call options leave them out.
type Config struct {
	Display         render.Options
	MaxImagesPerTab int
	MaxImages       int
	IgnoreLabels    []labels.Label
	// PageTitle, when set, wraps output into a standalone HTML document.
	PageTitle string
}

func DefaultConfig() Config {
	return Config{
		Display:         render.DefaultOptions(),
		MaxImagesPerTab: DefaultMaxImagesPerTab,
		MaxImages:       DefaultMaxImages,
		IgnoreLabels:    DefaultIgnoreLabels(),
	}
}
