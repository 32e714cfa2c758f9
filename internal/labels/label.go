package labels

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// labelKind distinguishes the two label representations.
type labelKind uint8

const (
	kindString labelKind = iota
	kindInt
)

// Label identifies the group an item belongs to. It is either a string or an
// integer and is comparable, so it can be used as a map key directly.
type Label struct {
	kind labelKind
	s    string
	i    int64
}

// String returns a string label.
func String(s string) Label {
	return Label{kind: kindString, s: s}
}

// Int returns an integer label.
func Int(i int64) Label {
	return Label{kind: kindInt, i: i}
}

// Parse turns command line text into a label. Text that parses as a base-10
// integer becomes an integer label, everything else stays a string.
func Parse(text string) Label {
	if i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
		return Int(i)
	}
	return String(text)
}

// Strings wraps every value as a string label, never inferring integers.
func Strings(values ...string) []Label {
	out := make([]Label, len(values))
	for i, v := range values {
		out[i] = String(v)
	}
	return out
}

// Ints wraps every value as an integer label.
func Ints(values ...int) []Label {
	out := make([]Label, len(values))
	for i, v := range values {
		out[i] = Int(int64(v))
	}
	return out
}

// IsInt reports whether the label is an integer label.
func (l Label) IsInt() bool { return l.kind == kindInt }

// String renders the label the way it appears in captions and tab titles.
func (l Label) String() string {
	if l.kind == kindInt {
		return strconv.FormatInt(l.i, 10)
	}
	return l.s
}

// GoString keeps the kind visible in test failure output.
func (l Label) GoString() string {
	if l.kind == kindInt {
		return fmt.Sprintf("labels.Int(%d)", l.i)
	}
	return fmt.Sprintf("labels.String(%q)", l.s)
}

// Compare defines the natural order: integers sort before strings, integers
// compare numerically and strings bytewise.
func Compare(a, b Label) int {
	if a.kind != b.kind {
		if a.kind == kindInt {
			return -1
		}
		return 1
	}
	if a.kind == kindInt {
		return cmp.Compare(a.i, b.i)
	}
	return strings.Compare(a.s, b.s)
}

// Sort orders labels in place using Compare.
func Sort(ls []Label) {
	slices.SortFunc(ls, Compare)
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// MarshalJSON keeps integers as JSON numbers.
func (l Label) MarshalJSON() ([]byte, error) {
	if l.kind == kindInt {
		return []byte(strconv.FormatInt(l.i, 10)), nil
	}
	return []byte(strconv.Quote(l.s)), nil
}

// UnmarshalJSON accepts a JSON string or an integral JSON number.
func (l *Label) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, `"`) {
		s, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("invalid label %s: %w", text, err)
		}
		*l = String(s)
		return nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("label must be a string or an integer, got %s", text)
	}
	*l = Int(i)
	return nil
}

// MarshalYAML keeps integers as YAML integers.
func (l Label) MarshalYAML() (any, error) {
	if l.kind == kindInt {
		return l.i, nil
	}
	return l.s, nil
}

// UnmarshalYAML maps !!int scalars to integer labels and other scalars to strings.
func (l *Label) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: label must be a scalar", node.Line)
	}
	if node.Tag == "!!int" {
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid integer label %q: %w", node.Line, node.Value, err)
		}
		*l = Int(i)
		return nil
	}
	*l = String(node.Value)
	return nil
}
