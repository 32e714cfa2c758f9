package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedItem is returned for items that are neither a path, a URL nor
// an image.Image.
var ErrUnsupportedItem = errors.New("unsupported image item")

// Resolver turns items into values for an <img src> attribute.
type Resolver struct {
	Fetcher *Fetcher
	// BaseDir is the directory the markup will be saved in. When set, local
	// paths are linked relative to it instead of the working directory.
	BaseDir string
}

// NewResolver creates a resolver that downloads remote images with f. A nil
// fetcher gets a default one without a cache.
func NewResolver(f *Fetcher) *Resolver {
	if f == nil {
		f = NewFetcher("")
	}
	return &Resolver{Fetcher: f}
}

// Source returns the src for item. URLs pass through unchanged and local paths
// become escaped URL references unless forceB64 is set, in which case the
// image is loaded, scaled down to targetWidth and inlined as a PNG data URI.
// In-memory images are always inlined. The boolean result reports whether src
// is a data URI.
func (r *Resolver) Source(ctx context.Context, item any, forceB64 bool, targetWidth int) (string, bool, error) {
	switch v := item.(type) {
	case image.Image:
		src, err := EncodeDataURI(v, targetWidth)
		return src, true, err
	case string:
		if !forceB64 {
			if IsRemote(v) {
				return v, false, nil
			}
			return r.link(v), false, nil
		}
		data, err := r.load(ctx, v)
		if err != nil {
			return "", false, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", false, fmt.Errorf("failed to decode %s: %w", v, err)
		}
		src, err := EncodeDataURI(img, targetWidth)
		return src, true, err
	default:
		return "", false, fmt.Errorf("%w: %T", ErrUnsupportedItem, item)
	}
}

// link turns a local path into a relative URL reference. '#' and '?' are
// escaped, and a leading segment containing ':' is prefixed with "./" so it is
// not read as a scheme.
func (r *Resolver) link(p string) string {
	if r.BaseDir != "" {
		p = relativeTo(r.BaseDir, p)
	}
	return (&url.URL{Path: filepath.ToSlash(p)}).String()
}

// relativeTo expresses p relative to dir, falling back to an absolute path
// when no relative form exists (different volumes).
func relativeTo(dir, p string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return p
	}
	absPath, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

func (r *Resolver) load(ctx context.Context, ref string) ([]byte, error) {
	if IsRemote(ref) {
		return r.Fetcher.Fetch(ctx, ref)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// EncodeDataURI encodes img as a base64 PNG data URI, scaling it down to
// targetWidth first when it is wider.
func EncodeDataURI(img image.Image, targetWidth int) (string, error) {
	img = Fit(img, targetWidth)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Fit scales img down to width, keeping the aspect ratio. Images that are
// already narrow enough, and non-positive widths, return img unchanged.
func Fit(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() <= width {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Describe returns a short name for item, used for alt text and titles.
func Describe(item any) string {
	switch v := item.(type) {
	case string:
		if IsRemote(v) {
			trimmed := v
			if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
				trimmed = trimmed[:i]
			}
			return path.Base(trimmed)
		}
		return filepath.Base(v)
	case image.Image:
		b := v.Bounds()
		return fmt.Sprintf("image %dx%d", b.Dx(), b.Dy())
	default:
		return fmt.Sprintf("%T", item)
	}
}

// Dimensions reads only the header of the image at imagePath.
func Dimensions(imagePath string) (int, int, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	img, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}

	return img.Width, img.Height, nil
}

// IsImageFile reports whether name has an extension one of the registered
// decoders handles.
func IsImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}
