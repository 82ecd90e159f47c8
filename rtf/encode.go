package rtf

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"rtd/doc"
	"rtd/misc"
)

// Options controls markup generation.
type Options struct {
	// CodePage is declared in the header and used for \'hh escapes.
	CodePage int
	// EscapeAbove is the highest code point written as code page byte,
	// anything above goes out as \uN.
	EscapeAbove int
}

func DefaultOptions() Options {
	return Options{CodePage: DefaultCodePage, EscapeAbove: 127}
}

// Encoder serializes documents. It keeps no state between calls and may be
// used concurrently.
type Encoder struct {
	opts Options
	enc  encoding.Encoding
	log  *zap.Logger
}

func NewEncoder(opts Options, log *zap.Logger) *Encoder {
	if log == nil {
		log = zap.NewNop()
	}
	enc, err := CodePage(opts.CodePage)
	if err != nil {
		log.Warn("Unable to use requested code page, using default", zap.Int("codepage", opts.CodePage), zap.Error(err))
		opts.CodePage = DefaultCodePage
		enc, _ = CodePage(DefaultCodePage)
	}
	opts.EscapeAbove = max(min(opts.EscapeAbove, 255), 127)
	return &Encoder{opts: opts, enc: enc, log: log.Named("rtf")}
}

// writer holds per document resource tables. Tables are filled in document
// order while body is produced and written out in front of it afterwards.
type writer struct {
	esc    escaper
	fonts  *Table[string]
	colors *Table[doc.Color]
	sizes  *Table[int]
	body   strings.Builder
}

// Encode produces complete markup for the document. Marks are not written.
func (e *Encoder) Encode(d *doc.Document) []byte {
	w := &writer{
		esc:    escaper{enc: e.enc, above: rune(e.opts.EscapeAbove)},
		fonts:  NewTable[string](),
		colors: NewTable[doc.Color](),
		sizes:  NewTable[int](),
	}
	root := d.Defaults.Style()
	w.fonts.Intern(root.Font)
	w.sizes.Intern(root.Size)

	w.body.WriteString(`\plain\f0\fs`)
	w.body.WriteString(strconv.Itoa(root.Size))
	w.body.WriteByte(' ')
	for _, p := range d.Paragraphs {
		w.node(p, root)
		w.body.WriteString("\\par\n")
	}

	var out strings.Builder
	out.WriteString(`{\rtf1\ansi\ansicpg`)
	out.WriteString(strconv.Itoa(e.opts.CodePage))
	out.WriteString(`\deff0\uc1`)
	w.header(&out)
	out.WriteString("\n")
	out.WriteString(w.body.String())
	out.WriteString("}")

	e.log.Debug("Document encoded",
		zap.String("id", d.ID),
		zap.Int("paragraphs", len(d.Paragraphs)),
		zap.Int("fonts", w.fonts.Len()),
		zap.Int("colors", w.colors.Len()),
		zap.Int("sizes", w.sizes.Len()),
	)
	return []byte(out.String())
}

func (w *writer) header(out *strings.Builder) {
	out.WriteString(`{\fonttbl`)
	for i, name := range w.fonts.Values() {
		out.WriteString(`{\f`)
		out.WriteString(strconv.Itoa(i))
		out.WriteString(`\fnil\fcharset0 `)
		w.esc.fontName(out, name)
		out.WriteString(";}")
	}
	out.WriteString("}")

	out.WriteString(`{\colortbl;`)
	for _, c := range w.colors.Values() {
		r, g, b := c.Components()
		out.WriteString(`\red`)
		out.WriteString(strconv.Itoa(int(r)))
		out.WriteString(`\green`)
		out.WriteString(strconv.Itoa(int(g)))
		out.WriteString(`\blue`)
		out.WriteString(strconv.Itoa(int(b)))
		out.WriteString(";")
	}
	out.WriteString("}")

	out.WriteString(`{\*\sizetbl`)
	for _, s := range w.sizes.Values() {
		out.WriteString(`\fs`)
		out.WriteString(strconv.Itoa(s))
		out.WriteString(";")
	}
	out.WriteString("}")

	out.WriteString(`{\*\generator `)
	out.WriteString(misc.GetAppName())
	out.WriteString(" ")
	out.WriteString(misc.GetVersion())
	out.WriteString(";}")
}

func (w *writer) node(n *doc.Node, parent doc.Style) {
	if !n.HasText() {
		return
	}
	style := n.Style.Apply(parent)

	closing := 0
	if d := w.directives(parent, style); d != "" {
		w.body.WriteString("{")
		w.body.WriteString(d)
		w.body.WriteString(" ")
		closing++
	}
	if style.Link != parent.Link && style.Link != "" {
		w.body.WriteString(`{\field{\*\fldinst{HYPERLINK "`)
		w.esc.write(&w.body, fieldQuote.Replace(style.Link))
		w.body.WriteString(`"}}{\fldrslt `)
		closing += 2
	}

	if n.Kind == doc.KindText {
		w.esc.write(&w.body, n.Text)
	} else {
		for _, ch := range n.Children {
			w.node(ch, style)
		}
	}
	w.body.WriteString(strings.Repeat("}", closing))
}

// directives returns control words switching formatting from parent to
// style, empty string when nothing changes.
func (w *writer) directives(parent, style doc.Style) string {
	var b strings.Builder
	if style.Font != parent.Font {
		b.WriteString(`\f`)
		b.WriteString(strconv.Itoa(w.fonts.Intern(style.Font)))
	}
	if style.Fore != parent.Fore {
		b.WriteString(`\cf`)
		b.WriteString(strconv.Itoa(w.color(style.Fore)))
	}
	if style.Back != parent.Back {
		b.WriteString(`\highlight`)
		b.WriteString(strconv.Itoa(w.color(style.Back)))
	}
	if style.Size != parent.Size {
		b.WriteString(`\fs`)
		b.WriteString(strconv.Itoa(style.Size))
		w.sizes.Intern(style.Size)
	}
	if style.Bold != parent.Bold {
		b.WriteString(onOff(`\b`, `\b0`, style.Bold))
	}
	if style.Italic != parent.Italic {
		b.WriteString(onOff(`\i`, `\i0`, style.Italic))
	}
	if style.Underline != parent.Underline {
		b.WriteString(onOff(`\ul`, `\ulnone`, style.Underline))
	}
	return b.String()
}

// color returns color table reference, entry 0 is reserved for automatic
// color.
func (w *writer) color(c doc.Color) int {
	if !c.IsRGB() {
		return 0
	}
	return w.colors.Intern(c) + 1
}

// Field instruction arguments escape quote and backslash with backslash.
var (
	fieldQuote   = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	fieldUnquote = strings.NewReplacer(`\\`, `\`, `\"`, `"`)
)

func onOff(on, off string, v bool) string {
	if v {
		return on
	}
	return off
}
