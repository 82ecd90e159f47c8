package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"rtd/content"
	"rtd/rtf"
	"rtd/search"
	"rtd/workspace"
)

var ErrNoStore = errors.New("workspace store is not configured")

// Runner executes script steps one by one. Output of find and export steps
// without path goes to out.
type Runner struct {
	log   *zap.Logger
	ws    *workspace.Workspace
	store *workspace.Store
	opts  rtf.Options
	out   io.Writer
}

// NewRunner prepares runner, store may be nil.
func NewRunner(ws *workspace.Workspace, store *workspace.Store, opts rtf.Options, out io.Writer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{log: log.Named("runner"), ws: ws, store: store, opts: opts, out: out}
}

// Run executes all steps stopping at the first failure. Context is checked
// between steps.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.step(ctx, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
		r.log.Debug("Step completed", zap.Int("step", i+1), zap.Stringer("action", st.Action))
	}
	return nil
}

func (r *Runner) tab(id string) (*workspace.Tab, error) {
	if id != "" {
		return r.ws.Tab(id)
	}
	if t := r.ws.Current(); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("no current tab: %w", workspace.ErrNoTab)
}

func (r *Runner) step(ctx context.Context, s Step) error {
	switch s.Action {
	case ActionNew:
		t := r.ws.NewTab()
		if s.Text != "" {
			return t.Insert(s.Text)
		}
		return nil
	case ActionOpen:
		return r.open(ctx, s.Path)
	case ActionSwitch:
		return r.ws.Switch(s.Tab)
	case ActionClose:
		t, err := r.tab(s.Tab)
		if err != nil {
			return err
		}
		return r.ws.Remove(t.ID)
	case ActionSave:
		if r.store == nil {
			return ErrNoStore
		}
		return r.store.Save(r.ws)
	}

	t, err := r.tab(s.Tab)
	if err != nil {
		return err
	}
	switch s.Action {
	case ActionSelect:
		t.Select(s.Start, s.End)
	case ActionSelectAll:
		t.SelectAll()
	case ActionInsert:
		return t.Insert(s.Text)
	case ActionDelete:
		return t.Delete()
	case ActionFormat:
		return t.Format(*s.Attribute, s.Value)
	case ActionFind:
		matches := search.Matches(search.Mark(t.Document(), s.Query))
		for _, m := range matches {
			if _, err := fmt.Fprintf(r.out, "%s:%d: %s\n", t.ID, m.Paragraph+1, m.Text); err != nil {
				return err
			}
		}
		r.log.Info("Search completed", zap.String("tab", t.ID), zap.Int("matches", len(matches)))
	case ActionReplace:
		d, n := search.Replace(t.Document(), s.Query, s.Replacement)
		t.SetDocument(d)
		r.log.Info("Replace completed", zap.String("tab", t.ID), zap.Int("replaced", n))
	case ActionExport:
		return r.export(t, s)
	default:
		return fmt.Errorf("unexpected action %s", s.Action)
	}
	return nil
}

func (r *Runner) open(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := content.Prepare(ctx, f, filepath.Base(path), r.log)
	if err != nil {
		return err
	}
	if c.Rejected != nil {
		r.log.Warn("Parts of the source were not recognized and skipped", zap.String("file", path), zap.Error(c.Rejected))
	}
	t := r.ws.OpenTab(c.Doc)
	t.Title = filepath.Base(path)
	return nil
}

func (r *Runner) export(t *workspace.Tab, s Step) error {
	data, err := content.Export(t.Document(), s.Format, r.opts, r.log)
	if err != nil {
		return err
	}
	if s.Path == "" {
		_, err = r.out.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return os.WriteFile(s.Path, data, 0644)
}
