package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/labelgrid/internal/plotting"
)

// Environment variables read by Load.
const (
	EnvImgWidth  = "LABELGRID_IMG_WIDTH"
	EnvZoomScale = "LABELGRID_ZOOM_SCALE"
	EnvForceB64  = "LABELGRID_FORCE_B64"
	EnvIgnore    = "LABELGRID_IGNORE"
	EnvCacheDir  = "LABELGRID_CACHE_DIR"
)

// File is the optional YAML configuration file. Unset keys keep defaults.
type File struct {
	ImgWidth        *int     `yaml:"img_width"`
	ZoomScale       *float64 `yaml:"zoom_scale"`
	ForceB64        *bool    `yaml:"force_b64"`
	MaxImagesPerTab *int     `yaml:"max_images_per_tab"`
	MaxImages       *int     `yaml:"max_images"`
	Ignore          []string `yaml:"ignore"`
	CacheDir        string   `yaml:"cache_dir"`
	Title           string   `yaml:"title"`
}

// Settings is the merged configuration. Ignore stays as text so it can be
// matched against whatever label kinds a manifest uses.
type Settings struct {
	Plot     plotting.Config
	Ignore   []string
	CacheDir string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	var ignore []string
	for _, l := range plotting.DefaultIgnoreLabels() {
		ignore = append(ignore, l.String())
	}
	return Settings{
		Plot:   plotting.DefaultConfig(),
		Ignore: ignore,
	}
}

// Load merges defaults, the YAML file at path (skipped when path is empty)
// and environment variables looked up with getenv, in that order.
func Load(path string, getenv func(string) string) (Settings, error) {
	s := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("failed to read config file: %w", err)
		}
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return s, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		s.apply(f)
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	if err := s.applyEnv(getenv); err != nil {
		return s, err
	}

	return s, nil
}

func (s *Settings) apply(f File) {
	if f.ImgWidth != nil {
		s.Plot.Display.ImgWidth = *f.ImgWidth
	}
	if f.ZoomScale != nil {
		s.Plot.Display.ZoomScale = *f.ZoomScale
	}
	if f.ForceB64 != nil {
		s.Plot.Display.ForceB64 = *f.ForceB64
	}
	if f.MaxImagesPerTab != nil {
		s.Plot.MaxImagesPerTab = *f.MaxImagesPerTab
	}
	if f.MaxImages != nil {
		s.Plot.MaxImages = *f.MaxImages
	}
	if f.Ignore != nil {
		s.Ignore = f.Ignore
	}
	if f.CacheDir != "" {
		s.CacheDir = f.CacheDir
	}
	if f.Title != "" {
		s.Plot.PageTitle = f.Title
	}
}

func (s *Settings) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvImgWidth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvImgWidth, v, err)
		}
		s.Plot.Display.ImgWidth = n
	}
	if v := getenv(EnvZoomScale); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvZoomScale, v, err)
		}
		s.Plot.Display.ZoomScale = f
	}
	if v := getenv(EnvForceB64); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvForceB64, v, err)
		}
		s.Plot.Display.ForceB64 = b
	}
	if v, ok := lookup(getenv, EnvIgnore); ok {
		s.Ignore = SplitList(v)
	}
	if v := getenv(EnvCacheDir); v != "" {
		s.CacheDir = v
	}
	return nil
}

// lookup treats a variable set to a single "-" as an explicit empty list.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "-" {
		return "", true
	}
	return v, true
}

// SplitList splits a comma separated list, trimming blanks. The result is
// never nil.
func SplitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
