package doc

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSource is returned (wrapped) whenever source or part of it
// could not be mapped to a styled tree.
var ErrUnsupportedSource = errors.New("unsupported source format")

// UnsupportedSourceError names the offending node type (element name, file
// kind) and optionally where it was found.
type UnsupportedSourceError struct {
	Node   string
	Source string
}

func (e *UnsupportedSourceError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %q", ErrUnsupportedSource, e.Node)
	}
	return fmt.Sprintf("%s: %q in %s", ErrUnsupportedSource, e.Node, e.Source)
}

func (e *UnsupportedSourceError) Unwrap() error {
	return ErrUnsupportedSource
}
