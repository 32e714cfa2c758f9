package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/labelgrid/internal/images"
	"github.com/lehigh-university-libraries/labelgrid/internal/labels"
)

// Loader reads image manifests
type Loader struct {
	path string
	// ResolveRelative rewrites relative image paths against the manifest's
	// directory.
	ResolveRelative bool
}

// NewLoader creates a new manifest loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Load reads every record from the manifest (Parquet, JSONL, YAML or CSV)
func (l *Loader) Load() (*Manifest, error) {
	return l.load(-1)
}

// LoadSample reads at most limit records
func (l *Loader) LoadSample(limit int) (*Manifest, error) {
	if limit < 0 {
		return l.load(-1)
	}
	return l.load(limit)
}

func (l *Loader) load(limit int) (*Manifest, error) {
	var (
		records []Record
		err     error
	)

	ext := strings.ToLower(filepath.Ext(l.path))
	switch ext {
	case ".parquet":
		records, err = l.loadParquet(limit)
	case ".jsonl", ".json":
		records, err = l.loadJSONL(limit)
	case ".yaml", ".yml":
		records, err = l.loadYAML(limit)
	case ".csv":
		records, err = l.loadCSV(limit)
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s (supported: .parquet, .jsonl, .yaml, .csv)", ext)
	}
	if err != nil {
		return nil, err
	}

	if l.ResolveRelative {
		base := filepath.Dir(l.path)
		for i := range records {
			records[i].Image = resolvePath(base, records[i].Image)
		}
	}

	slog.Debug("Loaded manifest", "path", l.path, "records", len(records))
	return &Manifest{Records: records}, nil
}

// loadJSONL loads records from a JSONL file
func (l *Loader) loadJSONL(limit int) ([]Record, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)

	const maxCapacity = 1024 * 1024 // 1MB per line
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for (limit < 0 || len(records) < limit) && scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		if record.Image == "" {
			return nil, fmt.Errorf("line %d: missing image", lineNum)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	return records, nil
}

// loadParquet loads records from a Parquet file with image and label columns
func (l *Loader) loadParquet(limit int) ([]Record, error) {
	slog.Debug("Opening Parquet file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[parquetRecord](pf)
	defer reader.Close()

	var records []Record
	rows := make([]parquetRecord, 128) // Read in batches

	batchNum := 0
	for limit < 0 || len(records) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			batchNum++
			if limit >= 0 && n > limit-len(records) {
				n = limit - len(records)
			}
			for _, row := range rows[:n] {
				records = append(records, Record{Image: row.Image, Label: labels.String(row.Label)})
			}
			slog.Debug("Read batch from Parquet", "batch", batchNum, "rows_in_batch", n, "total_rows_read", len(records))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return records, nil
}

// loadYAML loads records from a YAML list, or a mapping with a records key
func (l *Loader) loadYAML(limit int) ([]Record, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var records []Record
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.MappingNode {
		var m Manifest
		if err := node.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode YAML manifest: %w", err)
		}
		records = m.Records
	} else if err := node.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode YAML records: %w", err)
	}

	for i, r := range records {
		if r.Image == "" {
			return nil, fmt.Errorf("record %d: missing image", i+1)
		}
	}
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// loadCSV loads records from a CSV file with an image,label header
func (l *Loader) loadCSV(limit int) ([]Record, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	imageCol, labelCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "image":
			imageCol = i
		case "label":
			labelCol = i
		}
	}
	if imageCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("CSV header must contain image and label columns, got %v", header)
	}

	var records []Record
	for limit < 0 || len(records) < limit {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		records = append(records, Record{Image: row[imageCol], Label: labels.String(row[labelCol])})
	}
	return records, nil
}

// LoadDir builds a manifest from a directory tree where each image's parent
// directory names its label. Files are visited in path order.
func LoadDir(root string) (*Manifest, error) {
	var records []Record
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !images.IsImageFile(d.Name()) {
			return nil
		}
		dir := filepath.Dir(p)
		if dir == filepath.Clean(root) {
			slog.Warn("Skipping image outside a label directory", "path", p)
			return nil
		}
		records = append(records, Record{Image: p, Label: labels.String(filepath.Base(dir))})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Image < records[j].Image })
	slog.Debug("Loaded image directory", "root", root, "records", len(records))
	return &Manifest{Records: records}, nil
}

func resolvePath(base, ref string) string {
	if ref == "" || filepath.IsAbs(ref) || images.IsRemote(ref) {
		return ref
	}
	return filepath.Join(base, ref)
}
