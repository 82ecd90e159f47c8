package doc

import "slices"

// Kind distinguishes node variants of the styled tree.
type Kind int

const (
	KindText Kind = iota
	KindSpan
	KindParagraph
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindSpan:
		return "Span"
	case KindParagraph:
		return "Paragraph"
	default:
		return "Unknown"
	}
}

// Mark is a highlighted byte range [Start, End) of a text node. Marks are
// transient and never written out by encoders.
type Mark struct {
	Start int
	End   int
}

// Node is an element of the styled tree. Text nodes are leaves carrying
// content, containers (spans and paragraphs) carry ordered children. Every
// node may set style deltas for its subtree.
type Node struct {
	Kind     Kind
	Text     string
	Style    SpanStyle
	Children []*Node
	Marks    []Mark
}

func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

func StyledText(s string, style SpanStyle) *Node {
	return &Node{Kind: KindText, Text: s, Style: style}
}

func Span(style SpanStyle, children ...*Node) *Node {
	return &Node{Kind: KindSpan, Style: style, Children: children}
}

func Paragraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

func (n *Node) IsContainer() bool {
	return n.Kind != KindText
}

// HasText reports whether subtree has any characters.
func (n *Node) HasText() bool {
	if n.Kind == KindText {
		return n.Text != ""
	}
	return slices.ContainsFunc(n.Children, (*Node).HasText)
}

// Append adds children to container and returns it.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Clone makes a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:  n.Kind,
		Text:  n.Text,
		Style: n.Style,
		Marks: slices.Clone(n.Marks),
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, 0, len(n.Children))
		for _, ch := range n.Children {
			c.Children = append(c.Children, ch.Clone())
		}
	}
	return c
}

// walk visits text leaves in reading order with their effective style.
func (n *Node) walk(parent Style, fn func(n *Node, style Style)) {
	style := n.Style.Apply(parent)
	if n.Kind == KindText {
		fn(n, style)
		return
	}
	for _, ch := range n.Children {
		ch.walk(style, fn)
	}
}
