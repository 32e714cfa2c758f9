package render

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by Options.Validate failures.
var ErrInvalidOptions = errors.New("invalid display options")

// Options controls how thumbnails are drawn.
type Options struct {
	// ImgWidth is the thumbnail width in pixels.
	ImgWidth int `yaml:"img_width"`
	// ZoomScale is the magnification applied when a thumbnail is clicked.
	ZoomScale float64 `yaml:"zoom_scale"`
	// ForceB64 inlines every image as a data URI instead of referencing it.
	ForceB64 bool `yaml:"force_b64"`
}

// DefaultOptions returns 150px thumbnails zooming 2.5x, referenced by path.
func DefaultOptions() Options {
	return Options{
		ImgWidth:  150,
		ZoomScale: 2.5,
	}
}

func (o Options) Validate() error {
	if o.ImgWidth <= 0 {
		return fmt.Errorf("%w: img_width must be positive, got %d", ErrInvalidOptions, o.ImgWidth)
	}
	if o.ZoomScale <= 0 {
		return fmt.Errorf("%w: zoom_scale must be positive, got %g", ErrInvalidOptions, o.ZoomScale)
	}
	return nil
}

// encodeWidth is the width inlined images are scaled to, large enough to stay
// sharp when zoomed.
func (o Options) encodeWidth() int {
	return int(float64(o.ImgWidth) * o.ZoomScale)
}
