package fragment

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"rtd/doc"
	"rtd/misc"
)

// Encoder produces HTML documents.
type Encoder struct {
	log *zap.Logger
}

func NewEncoder(log *zap.Logger) *Encoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Encoder{log: log.Named("fragment")}
}

// Encode renders document as HTML. Every run becomes a chain of
// a > span > b > i > u elements, only links and formatting which differ from
// document defaults are written.
func (e *Encoder) Encode(d *doc.Document) *etree.Document {
	out := etree.NewDocument()
	out.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	out.CreateDirective("DOCTYPE html")

	html := out.CreateElement("html")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	gen := head.CreateElement("meta")
	gen.CreateAttr("name", "generator")
	gen.CreateAttr("content", misc.GetAppName()+" "+misc.GetVersion())

	root := d.Defaults.Style()
	body := html.CreateElement("body")
	body.CreateAttr("style", declarations(doc.Style{}, root)+"; white-space: pre-wrap")

	paragraphs := make([]*etree.Element, len(d.Paragraphs))
	for i := range d.Paragraphs {
		paragraphs[i] = body.CreateElement("p")
	}
	for _, r := range d.Runs() {
		writeRun(paragraphs[r.Paragraph], root, r.Style, r.Node.Text)
	}

	e.log.Debug("Document exported", zap.String("id", d.ID), zap.Int("paragraphs", len(paragraphs)))
	return out
}

func writeRun(parent *etree.Element, root, st doc.Style, text string) {
	el := parent
	if st.Link != "" {
		el = el.CreateElement("a")
		el.CreateAttr("href", st.Link)
	}
	if decl := declarations(root, st); decl != "" {
		el = el.CreateElement("span")
		el.CreateAttr("style", decl)
	}
	if st.Bold {
		el = el.CreateElement("b")
	}
	if st.Italic {
		el = el.CreateElement("i")
	}
	if st.Underline {
		el = el.CreateElement("u")
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			el.CreateElement("br")
		}
		if line != "" {
			el.CreateText(line)
		}
	}
}

// declarations returns CSS for font family, size and colors of st which
// differ from base.
func declarations(base, st doc.Style) string {
	var parts []string
	if st.Font != base.Font && st.Font != "" {
		parts = append(parts, "font-family: '"+strings.ReplaceAll(st.Font, "'", "")+"'")
	}
	if st.Size != base.Size && st.Size > 0 {
		parts = append(parts, "font-size: "+strconv.FormatFloat(float64(st.Size)/2, 'f', -1, 64)+"pt")
	}
	if st.Fore != base.Fore && st.Fore.IsRGB() {
		parts = append(parts, "color: "+st.Fore.Hex())
	}
	if st.Back != base.Back && st.Back.IsRGB() {
		parts = append(parts, "background-color: "+st.Back.Hex())
	}
	return strings.Join(parts, "; ")
}
