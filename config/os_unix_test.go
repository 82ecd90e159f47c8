//go:build !windows

package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Quarterly report", "Quarterly report"},
		{"a/b:c", "abc"},
		{"line\tone\nline two", "lineoneline two"},
		{"..hidden", "hidden"},
		{"", UntitledName},
		{"...", UntitledName},
		{" / ", UntitledName},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
