// Package workspace keeps open tabs, each owning a single document being
// edited, and persists them.
package workspace

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"rtd/doc"
	"rtd/laststyle"
	"rtd/surface"
)

var ErrNoTab = errors.New("no such tab")

// Tab owns one document together with its last style tracker. Every edit
// goes through the tracker so formatting survives document being emptied.
type Tab struct {
	ID    string
	Title string

	seq     int
	log     *zap.Logger
	buf     *surface.Buffer
	tracker *laststyle.Tracker
}

func newTab(seq int, d *doc.Document, log *zap.Logger) *Tab {
	id := "tab-" + strconv.Itoa(seq)
	log = log.With(zap.String("tab", id))
	return &Tab{
		ID:      id,
		Title:   "Tab " + strconv.Itoa(seq),
		seq:     seq,
		log:     log,
		buf:     surface.NewBuffer(d, log),
		tracker: laststyle.New(d.Last, log),
	}
}

// Surface gives access to tab editing surface for selection and inspection.
// Edits made directly on it bypass last style tracking.
func (t *Tab) Surface() *surface.Buffer {
	return t.buf
}

func (t *Tab) Tracker() *laststyle.Tracker {
	return t.tracker
}

// Document returns snapshot of the tab content including last style record.
func (t *Tab) Document() *doc.Document {
	d := t.buf.Content()
	d.Last = t.tracker.Snapshot()
	return d
}

// SetDocument replaces tab content, last style record of d (if any) becomes
// current tracker state.
func (t *Tab) SetDocument(d *doc.Document) {
	t.buf.SetContent(d)
	t.tracker = laststyle.New(d.Last, t.log)
}

func (t *Tab) Select(start, end int) {
	t.buf.Select(start, end)
}

func (t *Tab) SelectAll() {
	t.buf.SelectAll()
}

func (t *Tab) Insert(text string) error {
	return t.observe(t.buf.Insert(text))
}

func (t *Tab) Delete() error {
	return t.observe(t.buf.Delete())
}

// Format applies formatting to selection or typing style.
func (t *Tab) Format(attr surface.Attribute, value string) error {
	if err := t.buf.ApplyStyle(attr, value); err != nil {
		return err
	}
	return t.observe(t.buf.State())
}

func (t *Tab) observe(ev surface.EditEvent) error {
	_, err := t.tracker.Update(ev, t.buf)
	return err
}

// Workspace is a set of tabs with one of them being current. It is not safe
// for concurrent use.
type Workspace struct {
	log      *zap.Logger
	defaults doc.Defaults
	tabs     []*Tab
	current  *Tab
	seq      int
}

func New(defaults doc.Defaults, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{
		log:      log.Named("workspace"),
		defaults: defaults,
	}
}

func (w *Workspace) Defaults() doc.Defaults {
	return w.defaults
}

// NewTab opens tab with empty document and makes it current.
func (w *Workspace) NewTab() *Tab {
	return w.OpenTab(doc.New(w.defaults, doc.Paragraph()))
}

// OpenTab opens tab editing copy of d and makes it current. Tab numbers are
// never reused.
func (w *Workspace) OpenTab(d *doc.Document) *Tab {
	w.seq++
	t := newTab(w.seq, d, w.log)
	w.tabs = append(w.tabs, t)
	w.current = t
	w.log.Debug("Tab opened", zap.String("id", t.ID), zap.String("doc", d.ID))
	return t
}

// Tab finds tab by identifier.
func (w *Workspace) Tab(id string) (*Tab, error) {
	for _, t := range w.tabs {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", id, ErrNoTab)
}

// Current returns current tab, nil when there are no tabs.
func (w *Workspace) Current() *Tab {
	return w.current
}

func (w *Workspace) Switch(id string) error {
	t, err := w.Tab(id)
	if err != nil {
		return err
	}
	w.current = t
	return nil
}

// Remove closes tab. When current tab is closed first remaining tab
// becomes current.
func (w *Workspace) Remove(id string) error {
	t, err := w.Tab(id)
	if err != nil {
		return err
	}
	for i := range w.tabs {
		if w.tabs[i] == t {
			w.tabs = append(w.tabs[:i], w.tabs[i+1:]...)
			break
		}
	}
	switch {
	case len(w.tabs) == 0:
		w.current = nil
	case w.current == t:
		w.current = w.Tabs()[0]
	}
	w.log.Debug("Tab closed", zap.String("id", id))
	return nil
}

// Tabs lists tabs in natural order of their identifiers.
func (w *Workspace) Tabs() []*Tab {
	tabs := append([]*Tab(nil), w.tabs...)
	sort.SliceStable(tabs, func(i, j int) bool {
		return natural.Less(tabs[i].ID, tabs[j].ID)
	})
	return tabs
}

func (w *Workspace) Len() int {
	return len(w.tabs)
}
