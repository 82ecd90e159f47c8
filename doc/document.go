// Package doc implements styled document tree: paragraphs of nested spans
// with text leaves, each node carrying formatting deltas over its parent.
package doc

import (
	"strings"

	"github.com/google/uuid"
)

// Defaults are document-wide formatting used where nothing more specific is
// set. Size is in half-points.
type Defaults struct {
	Font string
	Size int
}

// DefaultDefaults returns built-in defaults: Arial, 12pt.
func DefaultDefaults() Defaults {
	return Defaults{Font: "Arial", Size: LegacyToHalfPoints(LegacyDefault)}
}

// Style returns root style all nodes of the document inherit.
func (d Defaults) Style() Style {
	return Style{Font: d.Font, Size: d.Size}
}

// LastStyle is a snapshot of the formatting most recently in effect over a
// selection. FontSize is in 1..7 units as editing surfaces report it.
type LastStyle struct {
	FontName string
	FontSize int
	Bold     bool
}

// Document is the root of a styled tree.
type Document struct {
	ID         string
	Defaults   Defaults
	Paragraphs []*Node
	Last       *LastStyle
}

// New creates document with fresh identifier. Missing defaults are filled
// with built-in values.
func New(defaults Defaults, paragraphs ...*Node) *Document {
	def := DefaultDefaults()
	if defaults.Font == "" {
		defaults.Font = def.Font
	}
	if defaults.Size <= 0 {
		defaults.Size = def.Size
	}
	return &Document{
		ID:         newID(),
		Defaults:   defaults,
		Paragraphs: paragraphs,
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// FromPlainText builds unstyled document, one paragraph per line.
func FromPlainText(text string, defaults Defaults) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	d := New(defaults)
	for line := range strings.SplitSeq(text, "\n") {
		p := Paragraph()
		if line != "" {
			p.Append(Text(line))
		}
		d.Paragraphs = append(d.Paragraphs, p)
	}
	return d
}

// Run is a text leaf together with its effective formatting.
type Run struct {
	Paragraph int
	Node      *Node
	Style     Style
}

// Walk visits text leaves of all paragraphs in reading order.
func (d *Document) Walk(fn func(paragraph int, n *Node, style Style)) {
	root := d.Defaults.Style()
	for i, p := range d.Paragraphs {
		p.walk(root, func(n *Node, style Style) {
			fn(i, n, style)
		})
	}
}

// Runs returns non-empty text leaves with their effective formatting.
func (d *Document) Runs() []Run {
	var runs []Run
	d.Walk(func(para int, n *Node, style Style) {
		if n.Text != "" {
			runs = append(runs, Run{Paragraph: para, Node: n, Style: style})
		}
	})
	return runs
}

// PlainText returns document text, paragraphs separated by new lines.
func (d *Document) PlainText() string {
	var b strings.Builder
	for i, p := range d.Paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		p.walk(Style{}, func(n *Node, _ Style) {
			b.WriteString(n.Text)
		})
	}
	return b.String()
}

// IsEmpty reports whether document renders nothing.
func (d *Document) IsEmpty() bool {
	return d.PlainText() == ""
}

func (d *Document) Clone() *Document {
	c := &Document{
		ID:       d.ID,
		Defaults: d.Defaults,
	}
	if d.Last != nil {
		last := *d.Last
		c.Last = &last
	}
	for _, p := range d.Paragraphs {
		c.Paragraphs = append(c.Paragraphs, p.Clone())
	}
	return c
}

// Equivalent reports whether both documents have the same characters with
// the same effective formatting in the same paragraphs. Tree shape, defaults
// and identifiers are ignored.
func Equivalent(a, b *Document) bool {
	ca, cb := a.Flatten(), b.Flatten()
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if ca[i].Break != cb[i].Break {
			return false
		}
		if !ca[i].Break && (ca[i].R != cb[i].R || ca[i].Style != cb[i].Style) {
			return false
		}
	}
	return true
}
