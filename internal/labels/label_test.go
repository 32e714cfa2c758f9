package labels

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text     string
		expected Label
	}{
		{"3", Int(3)},
		{"-1", Int(-1)},
		{"cat", String("cat")},
		{"3.5", String("3.5")},
		{"", String("")},
	}

	for _, tt := range tests {
		if got := Parse(tt.text); got != tt.expected {
			t.Errorf("Parse(%q): expected %#v, got %#v", tt.text, tt.expected, got)
		}
	}
}

func TestCompareOrdersIntsBeforeStrings(t *testing.T) {
	ls := []Label{String("b"), Int(10), String("a"), Int(-2)}
	Sort(ls)
	expected := []Label{Int(-2), Int(10), String("a"), String("b")}
	if !reflect.DeepEqual(ls, expected) {
		t.Errorf("Expected %#v, got %#v", expected, ls)
	}
}

func TestDistinct(t *testing.T) {
	got := Distinct(Strings("y", "x", "y", "z", "x"))
	if !reflect.DeepEqual(got, Strings("x", "y", "z")) {
		t.Errorf("Expected [x y z], got %v", got)
	}
}

func TestLabelJSON(t *testing.T) {
	var got []Label
	if err := json.Unmarshal([]byte(`["cat", 7, "-1"]`), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	expected := []Label{String("cat"), Int(7), String("-1")}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %#v, got %#v", expected, got)
	}

	if err := json.Unmarshal([]byte(`[1.5]`), &got); err == nil {
		t.Error("Expected error for fractional label")
	}

	data, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["cat",7,"-1"]` {
		t.Errorf("Unexpected JSON: %s", data)
	}
}

func TestLabelYAML(t *testing.T) {
	var got []Label
	if err := yaml.Unmarshal([]byte("- cat\n- 7\n- \"8\"\n"), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	expected := []Label{String("cat"), Int(7), String("8")}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %#v, got %#v", expected, got)
	}
}

func TestSet(t *testing.T) {
	s := NewSet(String("unknown"), Int(-1))
	if !s.Contains(Int(-1)) || !s.Contains(String("unknown")) {
		t.Error("Expected set to contain its members")
	}
	if s.Contains(String("-1")) {
		t.Error("String and integer labels must not be conflated")
	}
	if s.Len() != 2 {
		t.Errorf("Expected Len 2, got %d", s.Len())
	}
	var zero Set
	if zero.Contains(String("x")) {
		t.Error("Zero set must be empty")
	}
}
