package content

import (
	"rtd/utils/debug"
)

// String returns a readable dump of prepared content. It exists solely for
// manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	tw := debug.NewTreeWriter()
	tw.Fields(0, "Content", debug.F("source", c.SrcName), debug.F("format", c.Format), debug.F("charset", c.Charset))
	if c.Rejected != nil {
		tw.TextBlock(1, "rejected", c.Rejected.Error())
	}
	out := tw.String()
	if c.Doc != nil {
		out += c.Doc.String()
	}
	return out
}
