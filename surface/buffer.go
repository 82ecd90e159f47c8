package surface

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rtd/doc"
)

// Buffer is an editable surface kept in memory. Content is stored as
// character cells, positions are rune offsets where paragraph separator
// counts as a single position.
type Buffer struct {
	log *zap.Logger

	doc   *doc.Document
	cells []doc.Cell
	start int
	end   int
	caret doc.Style
}

// NewBuffer creates surface editing a copy of d. Nil d starts an empty
// document with built-in defaults.
func NewBuffer(d *doc.Document, log *zap.Logger) *Buffer {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Buffer{log: log.Named("surface")}
	if d == nil {
		d = doc.New(doc.DefaultDefaults(), doc.Paragraph())
	}
	b.SetContent(d)
	return b
}

// SetContent installs copy of d and puts caret at the end.
func (b *Buffer) SetContent(d *doc.Document) {
	b.doc = d.Clone()
	b.doc.Normalize()
	b.cells = b.doc.Flatten()
	b.start, b.end = len(b.cells), len(b.cells)
	b.caret = b.styleAt(b.end)
}

// Content returns snapshot of the edited document.
func (b *Buffer) Content() *doc.Document {
	return b.doc.Clone()
}

// Len returns number of positions in the buffer.
func (b *Buffer) Len() int {
	return len(b.cells)
}

func (b *Buffer) Text() string {
	return b.doc.PlainText()
}

// Selection returns ordered selection bounds.
func (b *Buffer) Selection() (int, int) {
	return b.start, b.end
}

func (b *Buffer) Collapsed() bool {
	return b.start == b.end
}

// State reports current selection and emptiness the way surface reports
// them after an edit.
func (b *Buffer) State() EditEvent {
	return EditEvent{
		SelectionCollapsed: b.Collapsed(),
		ContentEmpty:       b.doc.IsEmpty(),
	}
}

// Select sets selection, bounds are clamped and ordered. Collapsed
// selection picks typing style from the text around it.
func (b *Buffer) Select(start, end int) {
	clamp := func(v int) int { return min(max(v, 0), len(b.cells)) }
	start, end = clamp(start), clamp(end)
	if start > end {
		start, end = end, start
	}
	b.start, b.end = start, end
	if b.Collapsed() {
		b.caret = b.styleAt(start)
	}
}

func (b *Buffer) SelectAll() {
	b.Select(0, len(b.cells))
}

// Insert replaces selection with text typed in the current caret style.
// New line starts new paragraph.
func (b *Buffer) Insert(text string) EditEvent {
	style := b.caret
	if !b.Collapsed() {
		style = b.cells[b.start].Style
		if b.cells[b.start].Break {
			style = b.caret
		}
		b.remove(b.start, b.end)
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	ins := make([]doc.Cell, 0, len(text))
	for _, r := range text {
		switch r {
		case '\r':
		case '\n':
			ins = append(ins, doc.Cell{Break: true})
		default:
			ins = append(ins, doc.Cell{R: r, Style: style})
		}
	}
	b.cells = slices.Insert(b.cells, b.start, ins...)
	b.start += len(ins)
	b.end = b.start
	b.caret = style
	b.commit()
	return b.State()
}

// Delete removes selection, or character before caret when selection is
// collapsed.
func (b *Buffer) Delete() EditEvent {
	switch {
	case !b.Collapsed():
		b.remove(b.start, b.end)
	case b.start > 0:
		b.remove(b.start-1, b.start)
	default:
		return b.State()
	}
	b.caret = b.styleAt(b.start)
	b.commit()
	return b.State()
}

func (b *Buffer) remove(start, end int) {
	b.cells = slices.Delete(b.cells, start, end)
	b.start, b.end = start, start
}

// ActiveStyles reports formatting at the start of selection, or typing
// style for collapsed one.
func (b *Buffer) ActiveStyles() ActiveStyles {
	st := b.current()
	return ActiveStyles{
		FontName:  st.Font,
		FontSize:  doc.HalfPointsToLegacy(st.Size),
		Bold:      st.Bold,
		Italic:    st.Italic,
		Underline: st.Underline,
		Fore:      st.Fore,
		Back:      st.Back,
		Link:      st.Link,
	}
}

// ApplyStyle formats selection, or changes typing style when selection is
// collapsed. Toggles accept boolean value, empty value flips current state.
// Empty color removes it.
func (b *Buffer) ApplyStyle(attr Attribute, value string) error {
	change, err := b.styleChange(attr, value)
	if err != nil {
		return err
	}

	if b.Collapsed() {
		if attr != AttributeCreateLink {
			b.caret = change(b.caret)
		}
		return nil
	}
	for i := b.start; i < b.end; i++ {
		if !b.cells[i].Break {
			b.cells[i].Style = change(b.cells[i].Style)
		}
	}
	b.commit()
	b.log.Debug("Style applied", zap.Stringer("attr", attr), zap.String("value", value), zap.Int("start", b.start), zap.Int("end", b.end))
	return nil
}

func (b *Buffer) styleChange(attr Attribute, value string) (func(doc.Style) doc.Style, error) {
	invalid := fmt.Errorf("%s %q: %w", attr, value, ErrInvalidValue)
	current := b.current()

	switch attr {
	case AttributeFontName:
		name := strings.TrimSpace(value)
		if name == "" {
			return nil, invalid
		}
		return func(s doc.Style) doc.Style { s.Font = name; return s }, nil

	case AttributeFontSize:
		n, ok := doc.ParseLegacySize(value, doc.HalfPointsToLegacy(current.Size))
		if !ok {
			return nil, invalid
		}
		size := doc.LegacyToHalfPoints(n)
		return func(s doc.Style) doc.Style { s.Size = size; return s }, nil

	case AttributeBold, AttributeItalic, AttributeUnderline:
		var state bool
		switch attr {
		case AttributeBold:
			state = current.Bold
		case AttributeItalic:
			state = current.Italic
		default:
			state = current.Underline
		}
		on := !state
		if value != "" {
			v, err := strconv.ParseBool(value)
			if err != nil {
				return nil, invalid
			}
			on = v
		}
		return func(s doc.Style) doc.Style {
			switch attr {
			case AttributeBold:
				s.Bold = on
			case AttributeItalic:
				s.Italic = on
			default:
				s.Underline = on
			}
			return s
		}, nil

	case AttributeForeColor, AttributeBackColor:
		var c doc.Color
		if value != "" {
			var ok bool
			if c, ok = doc.ParseColor(value); !ok {
				return nil, invalid
			}
		}
		return func(s doc.Style) doc.Style {
			if attr == AttributeForeColor {
				s.Fore = c
			} else {
				s.Back = c
			}
			return s
		}, nil

	case AttributeCreateLink:
		link := strings.TrimSpace(value)
		if link == "" {
			return nil, invalid
		}
		return func(s doc.Style) doc.Style { s.Link = link; return s }, nil

	default:
		return nil, fmt.Errorf("%s: %w", attr, ErrInvalidAttribute)
	}
}

func (b *Buffer) current() doc.Style {
	if b.Collapsed() || b.cells[b.start].Break {
		return b.caret
	}
	return b.cells[b.start].Style
}

// styleAt returns formatting text typed at pos would get. Position inside
// empty paragraph gets document defaults.
func (b *Buffer) styleAt(pos int) doc.Style {
	if pos > 0 && !b.cells[pos-1].Break {
		return b.cells[pos-1].Style
	}
	if pos < len(b.cells) && !b.cells[pos].Break {
		return b.cells[pos].Style
	}
	return b.doc.Defaults.Style()
}

func (b *Buffer) commit() {
	b.doc.Rebuild(b.cells)
	b.doc.Normalize()
}
