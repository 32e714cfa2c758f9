package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/labelgrid/internal/config"
	"github.com/lehigh-university-libraries/labelgrid/internal/dataset"
	"github.com/lehigh-university-libraries/labelgrid/internal/display"
	"github.com/lehigh-university-libraries/labelgrid/internal/images"
	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
	"github.com/lehigh-university-libraries/labelgrid/internal/plotting"
	"github.com/lehigh-university-libraries/labelgrid/internal/render"
	"github.com/lehigh-university-libraries/labelgrid/internal/summary"
)

const defaultTitle = "Image gallery"

// galleryFlags are shared by every gallery subcommand
type galleryFlags struct {
	manifest    string
	dir         string
	sample      int
	output      string
	title       string
	fragment    bool
	configPath  string
	summaryPath string
	imgWidth    int
	zoomScale   float64
	forceB64    bool
	cacheDir    string
}

func (f *galleryFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.manifest, "manifest", "m", "", "Manifest file (.parquet, .jsonl, .yaml, .csv) with image and label columns")
	fl.StringVarP(&f.dir, "dir", "d", "", "Directory with one sub-directory of images per label")
	fl.IntVar(&f.sample, "sample", -1, "Read only the first N manifest records (-1 for all)")
	fl.StringVarP(&f.output, "output", "o", "-", "Output HTML file (- for stdout)")
	fl.StringVar(&f.title, "title", "", "Page title (default \""+defaultTitle+"\")")
	fl.BoolVar(&f.fragment, "fragment", false, "Write a bare HTML fragment instead of a full page")
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.StringVar(&f.summaryPath, "summary", "", "Also write a YAML summary of the rendered groups to this path")
	fl.IntVar(&f.imgWidth, "img-width", 0, "Thumbnail width in pixels (default 150)")
	fl.Float64Var(&f.zoomScale, "zoom-scale", 0, "Zoom factor when a thumbnail is clicked, best kept between 1.0 and 5.0 (default 2.5)")
	fl.BoolVar(&f.forceB64, "force-b64", false, "Embed images as base64 instead of linking their paths (slower, self-contained)")
	fl.StringVar(&f.cacheDir, "cache-dir", "", "Cache directory for remote images downloaded with --force-b64")
	cmd.MarkFlagsMutuallyExclusive("manifest", "dir")
	cmd.MarkFlagsOneRequired("manifest", "dir")
}

// run is everything a subcommand needs once flags are resolved
type run struct {
	flags    *galleryFlags
	settings config.Settings
	manifest *dataset.Manifest
	plotter  *plotting.Plotter
}

func (f *galleryFlags) prepare(cmd *cobra.Command) (*run, error) {
	settings, err := config.Load(f.configPath, os.Getenv)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("img-width") {
		settings.Plot.Display.ImgWidth = f.imgWidth
	}
	if fl.Changed("zoom-scale") {
		settings.Plot.Display.ZoomScale = f.zoomScale
	}
	if fl.Changed("force-b64") {
		settings.Plot.Display.ForceB64 = f.forceB64
	}
	if fl.Changed("cache-dir") {
		settings.CacheDir = f.cacheDir
	}
	if f.title != "" {
		settings.Plot.PageTitle = f.title
	}
	if settings.Plot.PageTitle == "" {
		settings.Plot.PageTitle = defaultTitle
	}
	if f.fragment {
		settings.Plot.PageTitle = ""
	}
	if err := settings.Plot.Display.Validate(); err != nil {
		return nil, err
	}

	manifest, err := f.loadManifest()
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded images", "source", f.source(), "count", len(manifest.Records), "labels", len(labels.Distinct(manifest.Labels())))
	logDimensions(manifest)

	resolver := images.NewResolver(images.NewFetcher(settings.CacheDir))
	var sink display.Sink = display.WriterSink{W: cmd.OutOrStdout()}
	if f.output != "" && f.output != "-" {
		sink = display.FileSink{Path: f.output}
		// the browser resolves image links against the saved page
		resolver.BaseDir = filepath.Dir(f.output)
	}

	renderer := render.New(resolver)

	return &run{
		flags:    f,
		settings: settings,
		manifest: manifest,
		plotter:  plotting.New(renderer, sink, settings.Plot),
	}, nil
}

func (f *galleryFlags) loadManifest() (*dataset.Manifest, error) {
	if f.dir != "" {
		return dataset.LoadDir(f.dir)
	}

	if _, err := os.Stat(f.manifest); err != nil {
		return nil, fmt.Errorf("manifest not found: %w", err)
	}
	loader := dataset.NewLoader(f.manifest)
	loader.ResolveRelative = true
	manifest, err := loader.LoadSample(f.sample)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest, nil
}

func (f *galleryFlags) source() string {
	if f.dir != "" {
		return f.dir
	}
	return f.manifest
}

// finish writes the optional summary
func (r *run) finish(res *plotting.Result) error {
	if r.flags.summaryPath == "" {
		return nil
	}
	cfg := r.plotter.Config()
	s := summary.Build(r.flags.source(), cfg, res, time.Now())
	if err := summary.Save(r.flags.summaryPath, s); err != nil {
		return err
	}
	slog.Info("Summary written", "path", r.flags.summaryPath, "groups", len(s.Groups))
	return nil
}

func logDimensions(m *dataset.Manifest) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, r := range m.Records {
		if images.IsRemote(r.Image) {
			continue
		}
		w, h, err := images.Dimensions(r.Image)
		if err != nil {
			slog.Warn("Failed to read image dimensions", "path", r.Image, "error", err)
			continue
		}
		slog.Debug("Image", "path", r.Image, "label", r.Label, "width", w, "height", h)
	}
}
