package doc

// Normalize removes empty text nodes and containers left without children,
// unwraps spans which set no formatting and merges neighbouring text nodes
// with identical deltas. Paragraphs are kept even when empty.
func (d *Document) Normalize() *Document {
	for _, p := range d.Paragraphs {
		p.Children = normalizeChildren(p.Children)
	}
	return d
}

func normalizeChildren(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, ch := range children {
		switch {
		case ch.Kind == KindText:
			if ch.Text == "" {
				continue
			}
		default:
			ch.Children = normalizeChildren(ch.Children)
			if len(ch.Children) == 0 {
				continue
			}
			if ch.Style.IsZero() {
				out = appendMerged(out, ch.Children...)
				continue
			}
		}
		out = appendMerged(out, ch)
	}
	return out
}

func appendMerged(out []*Node, nodes ...*Node) []*Node {
	for _, n := range nodes {
		if len(out) > 0 {
			last := out[len(out)-1]
			if last.Kind == KindText && n.Kind == KindText && last.Style == n.Style {
				shift := len(last.Text)
				last.Text += n.Text
				for _, m := range n.Marks {
					last.Marks = append(last.Marks, Mark{Start: m.Start + shift, End: m.End + shift})
				}
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
