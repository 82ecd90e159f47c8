package archive

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	fixzip "github.com/hidez8891/zip"
)

type entry struct {
	name    string
	content string
}

func makeArchive(t *testing.T, entries ...entry) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := fixzip.NewWriter(f)
	for _, e := range entries {
		if e.name[len(e.name)-1] == '/' {
			h := &fixzip.FileHeader{Name: e.name}
			h.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(h); err != nil {
				t.Fatalf("Failed to create directory %s: %v", e.name, err)
			}
			continue
		}
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := io.WriteString(fw, e.content); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func visit(t *testing.T, zipPath, pattern string) []string {
	t.Helper()
	var visited []string
	err := Walk(zipPath, pattern, func(archive string, file *fixzip.File) error {
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := makeArchive(t,
		entry{"letters/", ""},
		entry{"letters/draft.rtf", `{\rtf1 draft}`},
		entry{"letters/final.rtf", `{\rtf1 final}`},
		entry{"notes/todo.txt", "todo"},
		entry{"Notes/README.txt", "readme"},
		entry{"index.html", "<p>x</p>"},
	)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"prefix", "letters/", []string{"letters/draft.rtf", "letters/final.rtf"}},
		{"single file", "index.html", []string{"index.html"}},
		{"case sensitive", "notes/", []string{"notes/todo.txt"}},
		{"no match", "missing/", nil},
		{"everything", "", []string{"letters/draft.rtf", "letters/final.rtf", "notes/todo.txt", "Notes/README.txt", "index.html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visit(t, zipPath, tt.pattern); !slices.Equal(got, tt.want) {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := makeArchive(t, entry{"a.txt", "a"}, entry{"b.txt", "b"}, entry{"c.txt", "c"})

	stopErr := errors.New("stop walking")
	visited := 0
	err := Walk(zipPath, "", func(string, *fixzip.File) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) || visited != 2 {
		t.Errorf("Walk() = %v after %d files", err, visited)
	}
}

func TestWalk_FileContent(t *testing.T) {
	zipPath := makeArchive(t, entry{"doc.rtf", `{\rtf1 hello}`})

	err := Walk(zipPath, "", func(_ string, file *fixzip.File) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if string(data) != `{\rtf1 hello}` {
			t.Errorf("content = %s", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalk_Invalid(t *testing.T) {
	noop := func(string, *fixzip.File) error { return nil }

	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk(filepath.Join(t.TempDir(), "none.zip"), "", noop); err == nil {
			t.Error("expected error for nonexistent file")
		}
	})

	t.Run("not an archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(path, []byte("not a zip file"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(path, "", noop); err == nil {
			t.Error("expected error for invalid zip file")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := makeArchive(t, entry{"ok.txt", "x"}, entry{"../evil.txt", "x"})
		if err := Walk(zipPath, "", noop); err == nil {
			t.Error("expected error for unsafe entry")
		}
	})
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a/b.rtf", true},
		{"a/..b/c", true},
		{"../a", false},
		{"a/../../b", false},
		{"/etc/passwd", false},
		{`\windows\x`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRepair(t *testing.T) {
	src := makeArchive(t, entry{"one.txt", "first"}, entry{"dir/two.txt", "second"})
	dst := filepath.Join(t.TempDir(), "fixed.zip")

	if err := Repair(src, dst); err != nil {
		t.Fatalf("Repair() error = %v", err)
	}

	got := make(map[string]string)
	err := Walk(dst, "", func(_ string, file *fixzip.File) error {
		if file.Flags&fixzip.FlagDataDescriptor != 0 {
			t.Errorf("%s still has data descriptor flag", file.Name)
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		got[file.Name] = string(data)
		return err
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got["one.txt"] != "first" || got["dir/two.txt"] != "second" || len(got) != 2 {
		t.Errorf("repaired archive content = %v", got)
	}

	if err := Repair(filepath.Join(t.TempDir(), "none.zip"), dst); err == nil {
		t.Error("expected error for missing source")
	}
}
