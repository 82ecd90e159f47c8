package workspace

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"rtd/doc"
	"rtd/rtf"
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tabs (
	id        TEXT PRIMARY KEY,
	seq       INTEGER NOT NULL,
	title     TEXT NOT NULL,
	doc_id    TEXT NOT NULL,
	content   BLOB NOT NULL,
	last_font TEXT,
	last_size INTEGER,
	last_bold INTEGER
);
`

const schemaVersion = 1

// Store persists workspaces in sqlite database. Tab content is kept as RTF
// markup.
type Store struct {
	log  *zap.Logger
	conn *sqlite.Conn
	opts rtf.Options
}

// Open opens (creating if necessary) database at path.
func Open(path string, opts rtf.Options, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open store '%s': %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare store '%s': %w", path, err)
	}
	s := &Store{log: log.Named("store"), conn: conn, opts: opts}

	version, err := s.meta("version")
	if err != nil {
		conn.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMeta("version", strconv.Itoa(schemaVersion)); err != nil {
			conn.Close()
			return nil, err
		}
	case strconv.Itoa(schemaVersion):
	default:
		conn.Close()
		return nil, fmt.Errorf("store '%s' has unsupported version %s", path, version)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) meta(key string) (value string, err error) {
	err = sqlitex.Execute(s.conn, `SELECT value FROM meta WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value = stmt.ColumnText(0)
				return nil
			}})
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) setMeta(key, value string) error {
	err := sqlitex.Execute(s.conn, `INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		&sqlitex.ExecOptions{Args: []any{key, value}})
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", key, err)
	}
	return nil
}

// Save replaces stored state with w. Either everything is written or
// nothing changes.
func (s *Store) Save(w *Workspace) (err error) {
	defer sqlitex.Save(s.conn)(&err)

	if err = sqlitex.Execute(s.conn, `DELETE FROM tabs`, nil); err != nil {
		return fmt.Errorf("unable to clear tabs: %w", err)
	}

	enc := rtf.NewEncoder(s.opts, s.log)
	for _, t := range w.tabs {
		d := t.Document()
		args := []any{t.ID, t.seq, t.Title, d.ID, enc.Encode(d), nil, nil, nil}
		if d.Last != nil {
			args[5], args[6], args[7] = d.Last.FontName, d.Last.FontSize, d.Last.Bold
		}
		err = sqlitex.Execute(s.conn, `INSERT INTO tabs (id, seq, title, doc_id, content, last_font, last_size, last_bold)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{Args: args})
		if err != nil {
			return fmt.Errorf("unable to save tab %s: %w", t.ID, err)
		}
	}

	current := ""
	if w.current != nil {
		current = w.current.ID
	}
	for k, v := range map[string]string{
		"seq":          strconv.Itoa(w.seq),
		"current":      current,
		"default_font": w.defaults.Font,
		"default_size": strconv.Itoa(w.defaults.Size),
	} {
		if err = s.setMeta(k, v); err != nil {
			return err
		}
	}
	s.log.Debug("Workspace saved", zap.Int("tabs", len(w.tabs)))
	return nil
}

// Load restores workspace. Empty store gives workspace without tabs and
// with given defaults.
func (s *Store) Load(defaults doc.Defaults, log *zap.Logger) (*Workspace, error) {
	w := New(defaults, log)

	meta := make(map[string]string)
	err := sqlitex.Execute(s.conn, `SELECT key, value FROM meta`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			meta[stmt.ColumnText(0)] = stmt.ColumnText(1)
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to read workspace: %w", err)
	}
	if font := meta["default_font"]; font != "" {
		w.defaults.Font = font
	}
	if size, err := strconv.Atoi(meta["default_size"]); err == nil && size > 0 {
		w.defaults.Size = size
	}
	if seq, err := strconv.Atoi(meta["seq"]); err == nil {
		w.seq = seq
	}

	dec := rtf.NewDecoder(w.defaults, s.log)
	err = sqlitex.Execute(s.conn, `SELECT id, seq, title, doc_id, content, last_font, last_size, last_bold FROM tabs ORDER BY seq`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			content, err := io.ReadAll(stmt.ColumnReader(4))
			if err != nil {
				return fmt.Errorf("unable to read content of %s: %w", stmt.ColumnText(0), err)
			}
			d := dec.Decode(content)
			d.ID = stmt.ColumnText(3)
			if stmt.ColumnType(5) != sqlite.TypeNull {
				d.Last = &doc.LastStyle{
					FontName: stmt.ColumnText(5),
					FontSize: stmt.ColumnInt(6),
					Bold:     stmt.ColumnBool(7),
				}
			}

			t := newTab(stmt.ColumnInt(1), d, w.log)
			t.ID, t.Title = stmt.ColumnText(0), stmt.ColumnText(2)
			w.tabs = append(w.tabs, t)
			w.seq = max(w.seq, t.seq)
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to read tabs: %w", err)
	}

	if len(w.tabs) > 0 {
		w.current = w.tabs[0]
		if t, err := w.Tab(meta["current"]); err == nil {
			w.current = t
		}
	}
	s.log.Debug("Workspace loaded", zap.Int("tabs", len(w.tabs)))
	return w, nil
}
