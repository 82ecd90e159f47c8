// Package session replays scripted editing sessions against a workspace.
package session

import (
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"rtd/common"
	"rtd/surface"
)

// What a single step does.
// ENUM(new, open, switch, close, select, selectAll, insert, delete, format, find, replace, export, save)
type Action int

// Step is one scripted editing action. Only fields relevant to the action
// are looked at. Steps without tab work on current tab.
type Step struct {
	Action      Action             `yaml:"action"`
	Tab         string             `yaml:"tab,omitempty"`
	Text        string             `yaml:"text,omitempty"`
	Start       int                `yaml:"start,omitempty"`
	End         int                `yaml:"end,omitempty"`
	Attribute   *surface.Attribute `yaml:"attribute,omitempty"`
	Value       string             `yaml:"value,omitempty"`
	Query       string             `yaml:"query,omitempty"`
	Replacement string             `yaml:"replacement,omitempty"`
	Path        string             `yaml:"path,omitempty"`
	Format      common.OutputFmt   `yaml:"format,omitempty"`
}

type Script struct {
	Version int    `yaml:"version"`
	Steps   []Step `yaml:"steps"`
}

const scriptVersion = 1

var ErrBadScript = errors.New("bad session script")

// LoadScript decodes script. Unknown fields are errors.
func LoadScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &Script{Version: scriptVersion}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrBadScript, err)
	}
	if s.Version != scriptVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadScript, s.Version)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("%w: step %d (%s): %w", ErrBadScript, i+1, st.Action, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	switch s.Action {
	case ActionOpen:
		if s.Path == "" {
			return errors.New("path is required")
		}
	case ActionSwitch:
		if s.Tab == "" {
			return errors.New("tab is required")
		}
	case ActionSelect:
		if s.Start < 0 || s.End < 0 {
			return errors.New("selection bounds must not be negative")
		}
	case ActionFormat:
		if s.Attribute == nil {
			return errors.New("attribute is required")
		}
	case ActionFind, ActionReplace:
		if s.Query == "" {
			return errors.New("query is required")
		}
	}
	return nil
}
