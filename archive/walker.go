// Package archive builds Walk abstraction on top of zip reader.
package archive

import (
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	fixzip "github.com/hidez8891/zip"
)

// WalkFunc is called for every matching file in archive. The archive
// argument is the path passed to Walk. Returned error stops processing.
type WalkFunc func(archive string, file *fixzip.File) error

// Walk visits all files in the archive whose names start with pattern.
// Archives with absolute entries or entries containing ".." are refused as a
// whole.
func Walk(archive, pattern string, walkFn WalkFunc) error {
	r, err := fixzip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, pattern) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// Repair copies archive from into to clearing data descriptor flag on every
// entry. Some producers write descriptors with wrong sizes, and readers trust
// the central directory only after the flag is gone.
func Repair(from, to string) error {
	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive (%s): %w", from, err)
	}
	defer r.Close()

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create archive (%s): %w", to, err)
	}
	defer out.Close()

	w := fixzip.NewWriter(out)
	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to copy %q into (%s): %w", file.Name, to, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finalize archive (%s): %w", to, err)
	}
	return out.Close()
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}
