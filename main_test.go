package main

import (
	"runtime/debug"
	"testing"
)

func TestBuildVersion(t *testing.T) {
	withModule := func(v string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: v}}, true
		}
	}
	noInfo := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name     string
		stamped  string
		readInfo func() (*debug.BuildInfo, bool)
		expected string
	}{
		{"stamped wins", "v1.2.3", withModule("v0.9.0"), "v1.2.3"},
		{"module version", "", withModule("v0.9.0"), "v0.9.0"},
		{"local build", "", withModule("(devel)"), "dev"},
		{"no build info", "", noInfo, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildVersion(tt.stamped, tt.readInfo); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
