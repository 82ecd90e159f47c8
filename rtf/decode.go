package rtf

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"rtd/doc"
)

// Decoder turns markup back into styled documents. It is lenient: malformed
// or unknown constructs are dropped and decoding never fails.
type Decoder struct {
	defaults doc.Defaults
	log      *zap.Logger
}

func NewDecoder(defaults doc.Defaults, log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{defaults: defaults, log: log.Named("rtf")}
}

type destination int

const (
	destText destination = iota
	destFieldInst
)

type field struct {
	inst strings.Builder
	link string
}

// groupState is formatting saved on group open and restored on close.
type groupState struct {
	style doc.Style
	uc    int
	dest  destination
	field *field
}

type reader struct {
	log    *zap.Logger
	res    resources
	enc    encoding.Encoding
	root   doc.Style
	tokens []token

	stack     []groupState
	cur       groupState
	skipChars int
	hexBytes  []byte
	high      rune

	paragraphs []*doc.Node
	para       *doc.Node
	last       *doc.Node
	lastStyle  doc.Style

	unresolved int
	unknown    map[string]int
}

// destinations which never carry document text
var ignoredDestinations = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true,
	"pict": true, "object": true, "shppict": true, "nonshppict": true,
	"header": true, "headerl": true, "headerr": true, "headerf": true,
	"footer": true, "footerl": true, "footerr": true, "footerf": true,
	"footnote": true, "listtable": true, "listoverridetable": true,
	"revtbl": true, "rsidtbl": true, "xmlnstbl": true, "latentstyles": true,
	"themedata": true, "colorschememapping": true, "datastore": true,
	"filetbl": true, "generator": true, "author": true, "operator": true,
	"title": true, "subject": true, "keywords": true, "comment": true,
}

// control words understood well enough to be ignored quietly
var ignoredWords = map[string]bool{
	"rtf": true, "ansi": true, "mac": true, "pc": true, "pca": true,
	"ansicpg": true, "deff": true, "deflang": true, "deflangfe": true,
	"pard": true, "sectd": true, "viewkind": true, "lang": true,
	"langfe": true, "langnp": true, "nowidctlpar": true, "widctlpar": true,
	"ql": true, "qr": true, "qc": true, "qj": true, "li": true, "ri": true,
	"fi": true, "sa": true, "sb": true, "sl": true, "slmult": true,
	"fldedit": true, "fldlock": true, "fldpriv": true,
	"nouicompat": true, "paperw": true, "paperh": true, "margl": true,
	"margr": true, "margt": true, "margb": true, "kerning": true,
	"expnd": true, "expndtw": true, "charscalex": true, "loch": true,
	"hich": true, "dbch": true, "insrsid": true, "charrsid": true,
}

var hyperlinkRe = regexp.MustCompile(`HYPERLINK\s+"((?:[^"\\]|\\.)*)"`)

// Decode builds document from markup. Resource tables are read first,
// content is interpreted afterwards with a stack of group formatting.
func (d *Decoder) Decode(data []byte) *doc.Document {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(`{\rtf`)) {
		d.log.Warn("Input does not look like RTF, decoding anyway", zap.Int("size", len(data)))
	}

	r := &reader{
		log:     d.log,
		tokens:  tokenize(data),
		unknown: make(map[string]int),
	}
	r.res = readResources(r.tokens)

	enc, err := CodePage(r.res.codepage)
	if err != nil {
		d.log.Warn("Unsupported code page, using default", zap.Int("codepage", r.res.codepage), zap.Error(err))
		enc, _ = CodePage(DefaultCodePage)
	}
	r.enc = enc

	defaults := d.defaults
	if font, ok := r.res.fonts[r.res.deff]; ok {
		defaults.Font = font
	}
	if len(r.res.sizes) > 0 {
		defaults.Size = r.res.sizes[0]
	}
	document := doc.New(defaults)
	r.root = document.Defaults.Style()
	r.cur = groupState{style: r.root, uc: 1}

	r.run()
	document.Paragraphs = r.paragraphs

	d.log.Debug("Document decoded",
		zap.String("id", document.ID),
		zap.Int("paragraphs", len(document.Paragraphs)),
		zap.Int("fonts", len(r.res.fonts)),
		zap.Int("colors", len(r.res.colors)),
		zap.Int("unresolved", r.unresolved),
		zap.Any("unknown", r.unknown),
	)
	return document
}

func (r *reader) run() {
	for i := 0; i < len(r.tokens); i++ {
		t := r.tokens[i]
		if t.kind != tokHex {
			r.flushHex()
		}
		switch t.kind {
		case tokGroupOpen:
			if r.ignorable(i) {
				i = matching(r.tokens, i)
				continue
			}
			r.stack = append(r.stack, r.cur)
			r.skipChars = 0
		case tokGroupClose:
			r.closeGroup()
		case tokWord:
			r.word(t)
		case tokSymbol:
			r.symbol(t)
		case tokHex:
			if r.skipChars > 0 {
				r.skipChars--
				continue
			}
			r.hexBytes = append(r.hexBytes, t.hex)
		case tokText:
			r.text(t.name)
		}
	}
	r.flushHex()
	r.endParagraph(false)
}

// ignorable reports whether group opened at i is a destination without
// document text.
func (r *reader) ignorable(i int) bool {
	if i+1 >= len(r.tokens) {
		return false
	}
	next := r.tokens[i+1]
	if next.is(tokSymbol, "*") {
		return i+2 >= len(r.tokens) || !r.tokens[i+2].is(tokWord, "fldinst")
	}
	return next.kind == tokWord && ignoredDestinations[next.name]
}

func (r *reader) closeGroup() {
	if len(r.stack) == 0 {
		r.log.Debug("Unbalanced group end ignored")
		return
	}
	closing := r.cur
	r.cur = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.skipChars = 0

	if closing.dest == destFieldInst && r.cur.dest != destFieldInst && closing.field != nil {
		if m := hyperlinkRe.FindStringSubmatch(closing.field.inst.String()); m != nil {
			closing.field.link = fieldUnquote.Replace(m[1])
		}
	}
}

func (r *reader) word(t token) {
	switch t.name {
	case "par":
		r.endParagraph(true)
	case "line":
		r.emit("\n")
	case "tab":
		r.emit("\t")
	case "plain":
		link := r.cur.style.Link
		r.cur.style = r.root
		r.cur.style.Link = link
	case "b":
		r.cur.style.Bold = toggle(t)
	case "i":
		r.cur.style.Italic = toggle(t)
	case "ul", "uld", "uldb", "uldash", "uldashd", "uldashdd", "ulhwave",
		"ulldash", "ulth", "ulthd", "ulthdash", "ulthdashd", "ulthdashdd",
		"ulthldash", "ululdbwave", "ulw", "ulwave":
		r.cur.style.Underline = toggle(t)
	case "ulnone":
		r.cur.style.Underline = false
	case "f":
		r.cur.style.Font = r.font(t.param)
	case "fs":
		if t.param > 0 {
			r.cur.style.Size = t.param
		} else {
			r.cur.style.Size = r.root.Size
		}
	case "cf":
		r.cur.style.Fore = r.color("foreground", t.param)
	case "highlight", "cb", "chcbpat":
		r.cur.style.Back = r.color("background", t.param)
	case "uc":
		r.cur.uc = max(t.param, 0)
	case "u":
		r.unicode(t.param)
	case "field":
		r.cur.field = &field{}
	case "fldinst":
		r.cur.dest = destFieldInst
	case "fldrslt":
		r.cur.dest = destText
		if f := r.cur.field; f != nil && f.link != "" {
			r.cur.style.Link = f.link
		}
	case "emdash":
		r.text("\u2014")
	case "endash":
		r.text("\u2013")
	case "bullet":
		r.text("\u2022")
	case "lquote":
		r.text("\u2018")
	case "rquote":
		r.text("\u2019")
	case "ldblquote":
		r.text("\u201c")
	case "rdblquote":
		r.text("\u201d")
	case "emspace":
		r.text("\u2003")
	case "enspace":
		r.text("\u2002")
	default:
		if !ignoredWords[t.name] {
			if r.unknown[t.name] == 0 {
				r.log.Debug("Unknown control word skipped", zap.String("word", t.name))
			}
			r.unknown[t.name]++
		}
	}
}

func toggle(t token) bool {
	return !t.hasParam || t.param != 0
}

func (r *reader) symbol(t token) {
	switch t.name {
	case `\`, "{", "}":
		r.text(t.name)
	case "~":
		r.text("\u00a0")
	case "_":
		r.text("\u2011")
	}
}

func (r *reader) font(n int) string {
	if name, ok := r.res.fonts[n]; ok {
		return name
	}
	r.unresolvedRef("font", n)
	return r.root.Font
}

// color resolves color table reference, 0 selects automatic color unless
// table explicitly defines entry 0.
func (r *reader) color(kind string, n int) doc.Color {
	if n >= 0 && n < len(r.res.colors) {
		return r.res.colors[n]
	}
	if n != 0 {
		r.unresolvedRef(kind, n)
	}
	return 0
}

func (r *reader) unresolvedRef(table string, n int) {
	r.unresolved++
	r.log.Warn("Unresolved resource reference, using default", zap.String("table", table), zap.Int("index", n))
}

func (r *reader) unicode(param int) {
	u := unicodeRune(param)
	r.skipChars = 0
	switch {
	case utf16.IsSurrogate(u) && u < 0xdc00:
		r.high = u
	case utf16.IsSurrogate(u):
		if r.high != 0 {
			r.emit(string(utf16.DecodeRune(r.high, u)))
		} else {
			r.emit(string(utf8.RuneError))
		}
		r.high = 0
	default:
		r.high = 0
		r.emit(string(u))
	}
	r.skipChars = r.cur.uc
}

// text emits characters dropping pending \u fallback ones first.
func (r *reader) text(s string) {
	for r.skipChars > 0 && s != "" {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		r.skipChars--
	}
	if s == "" {
		return
	}
	if !utf8.ValidString(s) {
		s = decodeBytes(r.enc, []byte(s))
	}
	r.emit(s)
}

func (r *reader) flushHex() {
	if len(r.hexBytes) == 0 {
		return
	}
	s := decodeBytes(r.enc, r.hexBytes)
	r.hexBytes = r.hexBytes[:0]
	r.emit(s)
}

func (r *reader) emit(s string) {
	if r.cur.dest == destFieldInst {
		if r.cur.field != nil {
			r.cur.field.inst.WriteString(s)
		}
		return
	}
	if r.para == nil {
		r.para = doc.Paragraph()
	}
	if r.last != nil && r.lastStyle == r.cur.style {
		r.last.Text += s
		return
	}
	r.last = doc.StyledText(s, doc.Delta(r.root, r.cur.style))
	r.lastStyle = r.cur.style
	r.para.Append(r.last)
}

// endParagraph closes current paragraph. Explicit paragraph marks always
// produce one, at the end of input only pending content does.
func (r *reader) endParagraph(mark bool) {
	if r.cur.dest == destFieldInst {
		return
	}
	if r.para == nil {
		if !mark {
			return
		}
		r.para = doc.Paragraph()
	}
	r.paragraphs = append(r.paragraphs, r.para)
	r.para = nil
	r.last = nil
}
