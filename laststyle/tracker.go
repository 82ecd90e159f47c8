// Package laststyle remembers formatting user worked with last and restores
// it when the document is emptied, so text typed afterwards does not fall
// back to document defaults.
package laststyle

import (
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rtd/doc"
	"rtd/surface"
)

// ENUM(idle, tracking)
type State int

// Command asks surface to apply a single formatting attribute.
type Command struct {
	Attr  surface.Attribute
	Value string
}

// Tracker is owned by a single document and is not safe for concurrent use.
type Tracker struct {
	log  *zap.Logger
	last *doc.LastStyle
}

// New returns tracker, non-nil initial record (as restored from storage)
// starts it in tracking state.
func New(initial *doc.LastStyle, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tracker{log: log.Named("laststyle")}
	if initial != nil {
		last := *initial
		t.last = &last
	}
	return t
}

func (t *Tracker) State() State {
	if t.last == nil {
		return StateIdle
	}
	return StateTracking
}

// Snapshot returns copy of remembered formatting or nil when idle.
func (t *Tracker) Snapshot() *doc.LastStyle {
	if t.last == nil {
		return nil
	}
	last := *t.last
	return &last
}

// Observe processes edit event. Non-collapsed selection replaces snapshot
// with what surface reports as active. Empty content produces commands
// restoring the snapshot, bold is only restored when set.
func (t *Tracker) Observe(ev surface.EditEvent, s surface.Surface) []Command {
	if !ev.SelectionCollapsed {
		as := s.ActiveStyles()
		t.last = &doc.LastStyle{FontName: as.FontName, FontSize: as.FontSize, Bold: as.Bold}
		t.log.Debug("Style remembered", zap.String("font", as.FontName), zap.Int("size", as.FontSize), zap.Bool("bold", as.Bold))
	}
	if !ev.ContentEmpty || t.last == nil {
		return nil
	}

	var cmds []Command
	if t.last.FontName != "" {
		cmds = append(cmds, Command{Attr: surface.AttributeFontName, Value: t.last.FontName})
	}
	if t.last.FontSize > 0 {
		cmds = append(cmds, Command{Attr: surface.AttributeFontSize, Value: strconv.Itoa(t.last.FontSize)})
	}
	if t.last.Bold {
		cmds = append(cmds, Command{Attr: surface.AttributeBold, Value: "true"})
	}
	return cmds
}

// Apply executes commands in order. All commands are attempted, failures
// are combined.
func Apply(s surface.Surface, cmds []Command) (err error) {
	for _, c := range cmds {
		err = multierr.Append(err, s.ApplyStyle(c.Attr, c.Value))
	}
	return err
}

// Update is Observe followed by Apply, returning commands which were
// executed.
func (t *Tracker) Update(ev surface.EditEvent, s surface.Surface) ([]Command, error) {
	cmds := t.Observe(ev, s)
	if len(cmds) == 0 {
		return nil, nil
	}
	if err := Apply(s, cmds); err != nil {
		t.log.Warn("Unable to restore last style", zap.Error(err))
		return cmds, err
	}
	t.log.Debug("Last style restored", zap.Int("commands", len(cmds)))
	return cmds, nil
}
