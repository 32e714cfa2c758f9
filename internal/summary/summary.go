package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
	"github.com/lehigh-university-libraries/labelgrid/internal/plotting"
	"github.com/lehigh-university-libraries/labelgrid/internal/render"
)

// RunConfig records the options a gallery was rendered with
type RunConfig struct {
	Mode      plotting.Mode  `yaml:"mode"`
	Source    string         `yaml:"source"`
	Display   render.Options `yaml:"display"`
	Ignore    []labels.Label `yaml:"ignore,omitempty"`
	Timestamp string         `yaml:"timestamp"`
}

// Group is one label's entry in the summary
type Group struct {
	Label  labels.Label `yaml:"label"`
	Shown  int          `yaml:"shown"`
	Total  int          `yaml:"total,omitempty"`
	Images []string     `yaml:"images,omitempty"`
}

// Summary describes one rendered gallery
type Summary struct {
	Config RunConfig `yaml:"config"`
	Groups []Group   `yaml:"groups"`
}

// Build summarises res. Grid cells sharing a label are folded into one group
// in the order the labels first appear.
func Build(source string, cfg plotting.Config, res *plotting.Result, now time.Time) Summary {
	s := Summary{
		Config: RunConfig{
			Mode:      res.Mode,
			Source:    source,
			Display:   cfg.Display,
			Timestamp: now.Format("2006-01-02_15-04-05"),
		},
		Groups: []Group{},
	}
	if res.Mode == plotting.ModeRepresentatives {
		s.Config.Ignore = res.Ignored
	}

	for _, g := range res.Groups {
		s.Groups = append(s.Groups, Group{
			Label:  g.Label,
			Shown:  len(g.Items),
			Total:  g.Total,
			Images: describeAll(g.Items),
		})
	}

	index := make(map[labels.Label]int)
	for _, c := range res.Cells {
		i, ok := index[c.Label]
		if !ok {
			i = len(s.Groups)
			index[c.Label] = i
			s.Groups = append(s.Groups, Group{Label: c.Label})
		}
		s.Groups[i].Shown++
		s.Groups[i].Images = append(s.Groups[i].Images, describe(c.Item))
	}

	return s
}

// Save writes s as YAML to path, creating parent directories
func Save(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create summary directory: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}

func describeAll(items []labels.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, describe(it))
	}
	return out
}

// describe keeps string references verbatim; in-memory images have no path.
func describe(item labels.Item) string {
	if s, ok := item.(string); ok {
		return s
	}
	return fmt.Sprintf("<%T>", item)
}
