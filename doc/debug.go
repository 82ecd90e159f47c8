package doc

import (
	"fmt"
	"strings"

	"rtd/utils/debug"
)

// String returns a readable tree of the whole document. It exists solely for
// manual inspection during debugging and for debug reports.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	tw := debug.NewTreeWriter()
	tw.Fields(0, "Document", debug.F("id", d.ID), debug.F("font", d.Defaults.Font), debug.F("size", d.Defaults.Size))
	for i, p := range d.Paragraphs {
		dumpNode(tw, 1, fmt.Sprintf("Paragraph[%d]", i), p)
	}
	if d.Last != nil {
		tw.Fields(0, "LastStyle", debug.F("font", d.Last.FontName), debug.F("size", d.Last.FontSize), debug.F("bold", d.Last.Bold))
	}
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, depth int, label string, n *Node) {
	if n.Kind == KindText {
		tw.TextBlock(depth, label, n.Text)
		if !n.Style.IsZero() {
			tw.Fields(depth+1, "style", styleFields(n.Style)...)
		}
		if len(n.Marks) > 0 {
			parts := make([]string, 0, len(n.Marks))
			for _, m := range n.Marks {
				parts = append(parts, fmt.Sprintf("%d:%d", m.Start, m.End))
			}
			tw.Line(depth+1, "marks [%s]", strings.Join(parts, " "))
		}
		return
	}
	tw.Fields(depth, label, styleFields(n.Style)...)
	for _, ch := range n.Children {
		dumpNode(tw, depth+1, ch.Kind.String(), ch)
	}
}

func styleFields(s SpanStyle) []debug.Field {
	fields := []debug.Field{
		debug.F("font", s.Font),
		debug.F("fore", s.Fore),
		debug.F("back", s.Back),
		debug.F("bold", s.Bold),
		debug.F("italic", s.Italic),
		debug.F("underline", s.Underline),
		debug.F("link", s.Link),
	}
	if s.Size > 0 {
		fields = append(fields, debug.F("size", s.Size))
	}
	return fields
}
