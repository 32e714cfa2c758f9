package summary

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
	"github.com/lehigh-university-libraries/labelgrid/internal/plotting"
	"github.com/lehigh-university-libraries/labelgrid/internal/render"
)

var fixedTime = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func TestBuildTabs(t *testing.T) {
	res := &plotting.Result{
		Mode: plotting.ModeTabs,
		Groups: []labels.Group{
			{Label: labels.String("x"), Items: []labels.Item{"a", "c"}, Total: 3},
			{Label: labels.Int(4), Items: []labels.Item{"b"}, Total: 1},
		},
	}

	s := Build("m.jsonl", plotting.DefaultConfig(), res, fixedTime)

	assert.Equal(t, "2025-03-04_05-06-07", s.Config.Timestamp)
	assert.Nil(t, s.Config.Ignore)
	require.Len(t, s.Groups, 2)
	assert.Equal(t, Group{Label: labels.String("x"), Shown: 2, Total: 3, Images: []string{"a", "c"}}, s.Groups[0])
}

func TestBuildGridFoldsCells(t *testing.T) {
	res := &plotting.Result{
		Mode:    plotting.ModeRepresentatives,
		Ignored: plotting.DefaultIgnoreLabels(),
		Cells: []render.Cell{
			{Label: labels.String("y"), Item: "a"},
			{Label: labels.String("x"), Item: "b"},
			{Label: labels.String("y"), Item: "c"},
		},
	}

	s := Build("dir", plotting.DefaultConfig(), res, fixedTime)

	require.Len(t, s.Groups, 2)
	assert.Equal(t, labels.String("y"), s.Groups[0].Label)
	assert.Equal(t, 2, s.Groups[0].Shown)
	assert.Equal(t, []string{"a", "c"}, s.Groups[0].Images)
	assert.Equal(t, plotting.DefaultIgnoreLabels(), s.Config.Ignore)
}

func TestSave(t *testing.T) {
	res := &plotting.Result{
		Mode:   plotting.ModeTabs,
		Groups: []labels.Group{{Label: labels.Int(1), Items: []labels.Item{"a"}, Total: 1}},
	}
	p := filepath.Join(t.TempDir(), "out", "summary.yaml")

	require.NoError(t, Save(p, Build("m.csv", plotting.DefaultConfig(), res, fixedTime)))

	data, err := os.ReadFile(p)
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, plotting.ModeTabs, decoded.Config.Mode)
	assert.Equal(t, 150, decoded.Config.Display.ImgWidth)
	require.Len(t, decoded.Groups, 1)
	assert.Equal(t, labels.Int(1), decoded.Groups[0].Label)
	assert.Contains(t, string(data), "label: 1\n")
}
