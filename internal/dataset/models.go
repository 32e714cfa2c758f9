package dataset

import (
	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
)

// Record pairs an image reference with its label
type Record struct {
	Image string       `json:"image" yaml:"image"`
	Label labels.Label `json:"label" yaml:"label"`
}

// parquetRecord is the on-disk parquet schema; labels are stored as text
type parquetRecord struct {
	Image string `parquet:"image"`
	Label string `parquet:"label"`
}

// Manifest is an ordered list of records
type Manifest struct {
	Records []Record `yaml:"records"`
}

// Items returns the image references as opaque items, in record order
func (m *Manifest) Items() []labels.Item {
	out := make([]labels.Item, len(m.Records))
	for i, r := range m.Records {
		out[i] = r.Image
	}
	return out
}

// Labels returns the labels parallel to Items
func (m *Manifest) Labels() []labels.Label {
	out := make([]labels.Label, len(m.Records))
	for i, r := range m.Records {
		out[i] = r.Label
	}
	return out
}

// Resolve maps user-typed text onto the labels the manifest uses, so "-1"
// typed on the command line matches a string label "-1" as well as an integer
// label -1. String matches come first. Text that matches nothing is parsed
// with labels.Parse.
func (m *Manifest) Resolve(text string) []labels.Label {
	var str, num []labels.Label
	seen := make(map[labels.Label]bool)
	for _, r := range m.Records {
		if seen[r.Label] || r.Label.String() != text {
			continue
		}
		seen[r.Label] = true
		if r.Label.IsInt() {
			num = append(num, r.Label)
		} else {
			str = append(str, r.Label)
		}
	}
	if len(str)+len(num) == 0 {
		return []labels.Label{labels.Parse(text)}
	}
	return append(str, num...)
}

// ResolveAll applies Resolve to every entry. A nil input stays nil so callers
// can tell "not given" from "empty".
func (m *Manifest) ResolveAll(texts []string) []labels.Label {
	if texts == nil {
		return nil
	}
	out := make([]labels.Label, 0, len(texts))
	for _, t := range texts {
		out = append(out, m.Resolve(t)...)
	}
	return out
}
