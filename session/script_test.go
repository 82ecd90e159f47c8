package session

import (
	"errors"
	"strings"
	"testing"

	"rtd/common"
	"rtd/surface"
)

func TestLoadScript(t *testing.T) {
	s, err := LoadScript(strings.NewReader(`
version: 1
steps:
  - action: new
    text: "Hello"
  - action: select
    start: 0
    end: 5
  - action: format
    attribute: bold
  - action: export
    format: html
    path: out/hello.html
`))
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	if len(s.Steps) != 4 {
		t.Fatalf("steps = %d", len(s.Steps))
	}
	if s.Steps[0].Action != ActionNew || s.Steps[0].Text != "Hello" {
		t.Errorf("step 1 = %+v", s.Steps[0])
	}
	if s.Steps[2].Attribute == nil || *s.Steps[2].Attribute != surface.AttributeBold || s.Steps[2].Value != "" {
		t.Errorf("step 3 = %+v", s.Steps[2])
	}
	if s.Steps[3].Format != common.OutputFmtHtml || s.Steps[3].Path != "out/hello.html" {
		t.Errorf("step 4 = %+v", s.Steps[3])
	}

	empty, err := LoadScript(strings.NewReader(""))
	if err != nil || len(empty.Steps) != 0 {
		t.Errorf("LoadScript(empty) = %+v, %v", empty, err)
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"version", "version: 2\n", "unsupported version"},
		{"unknown field", "version: 1\nsteps:\n  - action: new\n    colour: red\n", "colour"},
		{"unknown action", "version: 1\nsteps:\n  - action: paste\n", "paste"},
		{"unknown attribute", "version: 1\nsteps:\n  - action: format\n    attribute: blink\n", "blink"},
		{"open without path", "version: 1\nsteps:\n  - action: open\n", "path is required"},
		{"switch without tab", "version: 1\nsteps:\n  - action: switch\n", "tab is required"},
		{"format without attribute", "version: 1\nsteps:\n  - action: format\n", "attribute is required"},
		{"find without query", "version: 1\nsteps:\n  - action: find\n", "query is required"},
		{"negative selection", "version: 1\nsteps:\n  - action: select\n    start: -1\n", "negative"},
		{"not yaml", "version: [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript(strings.NewReader(tt.script))
			if !errors.Is(err, ErrBadScript) || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadScript() error = %v", err)
			}
		})
	}
}
