package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fixzip "github.com/hidez8891/zip"
)

func TestReport_NilSafe(t *testing.T) {
	var r *Report
	r.Store("a", "/tmp/a")
	r.StoreData("b", []byte("b"))
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q, want empty", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReport_Archive(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(tmpDir, "source.rtf")
	if err := os.WriteFile(stored, []byte(`{\rtf1 Hi\par}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	r.Store("source.rtf", stored)
	r.Store("missing.log", filepath.Join(tmpDir, "missing.log"))
	r.StoreData("tree.txt", []byte("first"))
	r.StoreData("tree.txt", []byte("second"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := fixzip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	names := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		names[f.Name] = string(data)
	}

	if _, ok := names["MANIFEST"]; !ok {
		t.Error("report has no MANIFEST")
	}
	if names["source.rtf"] != `{\rtf1 Hi\par}` {
		t.Errorf("source.rtf = %q", names["source.rtf"])
	}
	if _, ok := names["missing.log"]; ok {
		t.Error("absent files must not be archived")
	}
	if names["tree.txt"] != "first" {
		t.Errorf("tree.txt = %q, want first", names["tree.txt"])
	}
	versioned := 0
	for n := range names {
		if strings.HasPrefix(n, "tree.txt-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected one versioned tree.txt entry, got %d", versioned)
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("x", "/tmp/one")
	r.Store("x", "/tmp/one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic when overwriting stored file")
		}
	}()
	r.Store("x", "/tmp/two")
}
