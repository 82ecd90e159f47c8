package laststyle

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"rtd/doc"
	"rtd/surface"
)

// fakeSurface records commands and reports fixed active styles.
type fakeSurface struct {
	active  surface.ActiveStyles
	applied []Command
	fail    surface.Attribute
}

func (f *fakeSurface) ApplyStyle(attr surface.Attribute, value string) error {
	f.applied = append(f.applied, Command{Attr: attr, Value: value})
	if attr == f.fail {
		return surface.ErrInvalidValue
	}
	return nil
}

func (f *fakeSurface) ActiveStyles() surface.ActiveStyles {
	return f.active
}

func (f *fakeSurface) Content() *doc.Document {
	return nil
}

func (f *fakeSurface) SetContent(*doc.Document) {}

func TestTracker_Reapply(t *testing.T) {
	s := &fakeSurface{active: surface.ActiveStyles{FontName: "Arial", FontSize: 5, Bold: true}, fail: -1}
	tr := New(nil, zaptest.NewLogger(t))

	if cmds := tr.Observe(surface.EditEvent{SelectionCollapsed: false}, s); cmds != nil {
		t.Errorf("capture must not produce commands, got %v", cmds)
	}
	if tr.State() != StateTracking {
		t.Fatalf("State() = %s, want tracking", tr.State())
	}

	got := tr.Observe(surface.EditEvent{SelectionCollapsed: true, ContentEmpty: true}, s)
	want := []Command{
		{surface.AttributeFontName, "Arial"},
		{surface.AttributeFontSize, "5"},
		{surface.AttributeBold, "true"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Observe() = %v, want %v", got, want)
	}
}

func TestTracker_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		events []surface.EditEvent
		active surface.ActiveStyles
		want   []Command
		state  State
	}{
		{
			name:   "idle emits nothing",
			events: []surface.EditEvent{{SelectionCollapsed: true, ContentEmpty: true}},
			state:  StateIdle,
		},
		{
			name:   "collapsed edits do not capture",
			events: []surface.EditEvent{{SelectionCollapsed: true}, {SelectionCollapsed: true, ContentEmpty: true}},
			active: surface.ActiveStyles{FontName: "Georgia", FontSize: 2},
			state:  StateIdle,
		},
		{
			name:   "bold is not reapplied when off",
			events: []surface.EditEvent{{}, {SelectionCollapsed: true, ContentEmpty: true}},
			active: surface.ActiveStyles{FontName: "Georgia", FontSize: 2},
			want:   []Command{{surface.AttributeFontName, "Georgia"}, {surface.AttributeFontSize, "2"}},
			state:  StateTracking,
		},
		{
			name:   "non-empty content emits nothing",
			events: []surface.EditEvent{{}, {SelectionCollapsed: true}},
			active: surface.ActiveStyles{FontName: "Georgia", FontSize: 2, Bold: true},
			state:  StateTracking,
		},
		{
			name:   "capture and reapply in one event",
			events: []surface.EditEvent{{ContentEmpty: true}},
			active: surface.ActiveStyles{FontName: "Verdana", FontSize: 7},
			want:   []Command{{surface.AttributeFontName, "Verdana"}, {surface.AttributeFontSize, "7"}},
			state:  StateTracking,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSurface{active: tt.active, fail: -1}
			tr := New(nil, nil)
			var got []Command
			for _, ev := range tt.events {
				got = tr.Observe(ev, s)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("last Observe() = %v, want %v", got, tt.want)
			}
			if tr.State() != tt.state {
				t.Errorf("State() = %s, want %s", tr.State(), tt.state)
			}
		})
	}
}

func TestTracker_SnapshotOverwritten(t *testing.T) {
	s := &fakeSurface{active: surface.ActiveStyles{FontName: "Arial", FontSize: 3, Bold: true}}
	tr := New(&doc.LastStyle{FontName: "Georgia", FontSize: 6}, nil)
	if tr.State() != StateTracking {
		t.Fatal("restored tracker must be tracking")
	}
	tr.Observe(surface.EditEvent{}, s)
	snap := tr.Snapshot()
	if *snap != (doc.LastStyle{FontName: "Arial", FontSize: 3, Bold: true}) {
		t.Errorf("Snapshot() = %+v", snap)
	}
	snap.FontName = "changed"
	if tr.Snapshot().FontName != "Arial" {
		t.Error("Snapshot() must return a copy")
	}
	if New(nil, nil).Snapshot() != nil {
		t.Error("idle tracker has no snapshot")
	}
}

func TestApply(t *testing.T) {
	s := &fakeSurface{fail: surface.AttributeFontSize}
	cmds := []Command{
		{surface.AttributeFontName, "Arial"},
		{surface.AttributeFontSize, "9"},
		{surface.AttributeBold, "true"},
	}
	err := Apply(s, cmds)
	if !errors.Is(err, surface.ErrInvalidValue) {
		t.Errorf("Apply() = %v", err)
	}
	if !slices.Equal(s.applied, cmds) {
		t.Errorf("all commands must be attempted, got %v", s.applied)
	}
}

func TestUpdate_Buffer(t *testing.T) {
	b := surface.NewBuffer(doc.FromPlainText("Hello", doc.DefaultDefaults()), zaptest.NewLogger(t))
	tr := New(nil, zaptest.NewLogger(t))

	b.SelectAll()
	for _, c := range []Command{{surface.AttributeFontName, "Verdana"}, {surface.AttributeFontSize, "5"}, {surface.AttributeBold, ""}} {
		if err := b.ApplyStyle(c.Attr, c.Value); err != nil {
			t.Fatal(err)
		}
		if _, err := tr.Update(b.State(), b); err != nil {
			t.Fatal(err)
		}
	}

	cmds, err := tr.Update(b.Delete(), b)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 3 {
		t.Errorf("expected three reapply commands, got %v", cmds)
	}

	b.Insert("again")
	runs := b.Content().Runs()
	want := doc.Style{Font: "Verdana", Size: 36, Bold: true}
	if len(runs) != 1 || runs[0].Style != want {
		t.Errorf("text typed after emptying must keep formatting, got %+v", runs)
	}
}
