package convert

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fixzip "github.com/hidez8891/zip"

	"rtd/common"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()
	w := fixzip.NewWriter(f)
	for name, data := range files {
		fw, err := w.CreateHeader(&fixzip.FileHeader{Name: name, Method: fixzip.Store})
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := io.WriteString(fw, data); err != nil {
			t.Fatalf("Failed to write to zip: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}

func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	plain := filepath.Join(tmpDir, "test.zip")
	if err := os.WriteFile(plain, []byte("not a real zip file"), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := isArchiveFile(plain); err != nil || got {
		t.Errorf("isArchiveFile(text) = %v, %v", got, err)
	}

	real := filepath.Join(tmpDir, "docs.bin")
	writeZip(t, real, map[string]string{"a.rtf": `{\rtf1 a}`})
	if got, err := isArchiveFile(real); err != nil || !got {
		t.Errorf("isArchiveFile(zip) = %v, %v", got, err)
	}

	if _, err := isArchiveFile(filepath.Join(tmpDir, "missing.zip")); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestDocumentKind(t *testing.T) {
	tests := []struct {
		name string
		head string
		want common.InputFmt
	}{
		{"memo.rtf", `{\rtf1 x}`, common.InputFmtRtf},
		{"no-extension", `{\rtf1 x}`, common.InputFmtRtf},
		{"page.html", "<p>x</p>", common.InputFmtHtml},
		{"notes.txt", "text", common.InputFmtTxt},
		{"main.go", "package main", common.InputFmtUnknown},
		{"README", "text", common.InputFmtUnknown},
		{"blob.bin", "\x01\x00\x02", common.InputFmtUnknown},
		{"letter.docx", "PK\x03\x04", common.InputFmtDocx},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documentKind([]byte(tt.head), tt.name); got != tt.want {
				t.Errorf("documentKind() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsDocumentFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "long.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("line of text\n", 100)), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := isDocumentFile(path); err != nil || got != common.InputFmtTxt {
		t.Errorf("isDocumentFile() = %s, %v", got, err)
	}
	if _, err := isDocumentFile(filepath.Join(tmpDir, "missing.txt")); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestIsDocumentInArchive(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "docs.zip")
	writeZip(t, zipPath, map[string]string{
		"memo.rtf":  `{\rtf1\ansi memo}`,
		"data.json": `{"a": 1}`,
	})

	r, err := fixzip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("Failed to open zip: %v", err)
	}
	defer r.Close()

	for _, f := range r.File {
		got, err := isDocumentInArchive(f)
		if err != nil {
			t.Fatalf("isDocumentInArchive(%s) error = %v", f.Name, err)
		}
		want := common.InputFmtUnknown
		if f.Name == "memo.rtf" {
			want = common.InputFmtRtf
		}
		if got != want {
			t.Errorf("isDocumentInArchive(%s) = %s, want %s", f.Name, got, want)
		}
	}
}
