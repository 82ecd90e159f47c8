// Package surface defines the boundary between document engine and an
// editable surface, and provides an in-memory surface used by command line
// sessions and tests.
package surface

import (
	"errors"

	"rtd/doc"
)

// Formatting command understood by editable surface.
// ENUM(fontName, fontSize, bold, italic, underline, foreColor, backColor, createLink)
type Attribute int

// ErrInvalidValue is returned when command value could not be applied.
var ErrInvalidValue = errors.New("invalid attribute value")

// ActiveStyles is formatting surface reports for the current selection or
// caret. FontSize is 1..7.
type ActiveStyles struct {
	FontName  string
	FontSize  int
	Bold      bool
	Italic    bool
	Underline bool
	Fore      doc.Color
	Back      doc.Color
	Link      string
}

// EditEvent is reported by surface after every edit.
type EditEvent struct {
	SelectionCollapsed bool
	ContentEmpty       bool
}

// Surface is everything document engine may ask of an editor.
type Surface interface {
	ApplyStyle(attr Attribute, value string) error
	ActiveStyles() ActiveStyles
	Content() *doc.Document
	SetContent(d *doc.Document)
}
