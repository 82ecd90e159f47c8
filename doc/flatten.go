package doc

import "strings"

// Cell is a single character with its effective formatting. Break cells
// separate paragraphs and carry no character.
type Cell struct {
	R     rune
	Style Style
	Break bool
}

// Flatten returns document content as a sequence of cells.
func (d *Document) Flatten() []Cell {
	var cells []Cell
	root := d.Defaults.Style()
	for i, p := range d.Paragraphs {
		if i > 0 {
			cells = append(cells, Cell{Break: true})
		}
		p.walk(root, func(n *Node, style Style) {
			for _, r := range n.Text {
				cells = append(cells, Cell{R: r, Style: style})
			}
		})
	}
	return cells
}

// Build turns cells back into paragraphs. Neighbouring characters with equal
// formatting end up in a single text node carrying delta from defaults.
// There is always at least one paragraph.
func Build(cells []Cell, defaults Defaults) []*Node {
	root := defaults.Style()

	var (
		paragraphs = []*Node{Paragraph()}
		text       strings.Builder
		style      Style
	)
	flush := func() {
		if text.Len() == 0 {
			return
		}
		p := paragraphs[len(paragraphs)-1]
		p.Append(StyledText(text.String(), Delta(root, style)))
		text.Reset()
	}

	for _, c := range cells {
		if c.Break {
			flush()
			paragraphs = append(paragraphs, Paragraph())
			continue
		}
		if text.Len() > 0 && c.Style != style {
			flush()
		}
		style = c.Style
		text.WriteRune(c.R)
	}
	flush()
	return paragraphs
}

// Rebuild replaces document content with cells.
func (d *Document) Rebuild(cells []Cell) {
	d.Paragraphs = Build(cells, d.Defaults)
}
