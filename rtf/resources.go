package rtf

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"rtd/doc"
)

// resources are document level tables and settings collected before content
// is interpreted.
type resources struct {
	deff     int
	codepage int
	fonts    map[int]string
	colors   []doc.Color
	sizes    []int
}

func readResources(ts []token) resources {
	res := resources{
		codepage: DefaultCodePage,
		fonts:    make(map[int]string),
	}
	var seenDeff, seenCP bool
	for _, t := range ts {
		if t.kind != tokWord || !t.hasParam {
			continue
		}
		switch {
		case t.name == "ansicpg" && !seenCP:
			res.codepage, seenCP = t.param, true
		case t.name == "deff" && !seenDeff:
			res.deff, seenDeff = t.param, true
		}
	}
	enc, err := CodePage(res.codepage)
	if err != nil {
		enc, _ = CodePage(DefaultCodePage)
	}

	for i := 0; i < len(ts); i++ {
		if ts[i].kind != tokGroupOpen || i+1 >= len(ts) {
			continue
		}
		end := matching(ts, i)
		switch {
		case ts[i+1].is(tokWord, "fonttbl"):
			parseFonts(ts[i+2:min(end, len(ts))], enc, res.fonts)
		case ts[i+1].is(tokWord, "colortbl"):
			res.colors = parseColors(ts[i+2 : min(end, len(ts))])
		case ts[i+1].is(tokSymbol, "*") && i+2 < len(ts) && ts[i+2].is(tokWord, "sizetbl"):
			res.sizes = parseSizes(ts[i+3 : min(end, len(ts))])
		default:
			continue
		}
		i = end
	}
	return res
}

// matching returns index of the token closing group opened at i or length
// of the token stream when group is never closed.
func matching(ts []token, i int) int {
	depth := 0
	for j := i; j < len(ts); j++ {
		switch ts[j].kind {
		case tokGroupOpen:
			depth++
		case tokGroupClose:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(ts)
}

// Font entries come either as subgroups {\f0\fnil Arial;} or as a flat
// list \f0 Arial;\f1 Georgia; - both are terminated by semicolon. Names are
// kept as written, only the delimiter after control word is not part of it.
func parseFonts(ts []token, enc encoding.Encoding, fonts map[int]string) {
	var (
		cur  = -1
		name = textBuffer{enc: enc}
		uc   = 1
		skip int
	)
	commit := func() {
		if n := name.String(); cur >= 0 && strings.TrimSpace(n) != "" {
			if _, dup := fonts[cur]; !dup {
				fonts[cur] = n
			}
		}
		name.Reset()
		cur = -1
		skip = 0
	}
	for j := 0; j < len(ts); j++ {
		t := ts[j]
		switch t.kind {
		case tokGroupOpen:
			// {\*\panose ...}, {\*\falt ...} and friends
			if j+1 < len(ts) && ts[j+1].is(tokSymbol, "*") {
				j = matching(ts, j)
			}
		case tokGroupClose:
			commit()
		case tokWord:
			switch t.name {
			case "f":
				cur = t.param
				name.Reset()
			case "uc":
				uc = max(t.param, 0)
			case "u":
				name.text(string(unicodeRune(t.param)))
				skip = uc
			}
		case tokSymbol:
			if t.name == `\` || t.name == "{" || t.name == "}" {
				name.text(t.name)
			}
		case tokHex:
			if skip > 0 {
				skip--
				continue
			}
			name.hex(t.hex)
		case tokText:
			s := t.name
			for skip > 0 && s != "" {
				_, size := utf8.DecodeRuneInString(s)
				s = s[size:]
				skip--
			}
			for {
				k := strings.IndexByte(s, ';')
				if k < 0 {
					name.text(s)
					break
				}
				name.text(s[:k])
				commit()
				s = s[k+1:]
			}
		}
	}
	commit()
}

// Colors are positional, an entry without components is automatic color.
func parseColors(ts []token) []doc.Color {
	var (
		colors  []doc.Color
		rgb     [3]int
		defined bool
	)
	for _, t := range ts {
		switch t.kind {
		case tokWord:
			switch t.name {
			case "red":
				rgb[0], defined = t.param, true
			case "green":
				rgb[1], defined = t.param, true
			case "blue":
				rgb[2], defined = t.param, true
			}
		case tokText:
			for range strings.Count(t.name, ";") {
				var c doc.Color
				if defined {
					c = doc.RGB(component(rgb[0]), component(rgb[1]), component(rgb[2]))
				}
				colors = append(colors, c)
				rgb, defined = [3]int{}, false
			}
		}
	}
	return colors
}

func component(v int) uint8 {
	return uint8(max(min(v, 255), 0))
}

func parseSizes(ts []token) []int {
	var (
		sizes   []int
		pending int
	)
	for _, t := range ts {
		switch t.kind {
		case tokWord:
			if t.name == "fs" && t.param > 0 {
				pending = t.param
			}
		case tokText:
			for range strings.Count(t.name, ";") {
				if pending > 0 {
					sizes = append(sizes, pending)
				}
				pending = 0
			}
		}
	}
	return sizes
}

// unicodeRune converts signed 16 bit \u parameter to rune.
func unicodeRune(param int) rune {
	r := rune(param)
	if r < 0 {
		r += 0x10000
	}
	return r
}

// textBuffer gathers characters coming as raw text, code page bytes and
// unicode escapes.
type textBuffer struct {
	enc encoding.Encoding
	b   strings.Builder
	raw []byte
}

func (tb *textBuffer) hex(c byte) {
	tb.raw = append(tb.raw, c)
}

func (tb *textBuffer) text(s string) {
	tb.flush()
	if !utf8.ValidString(s) {
		s = decodeBytes(tb.enc, []byte(s))
	}
	tb.b.WriteString(s)
}

func (tb *textBuffer) flush() {
	if len(tb.raw) > 0 {
		tb.b.WriteString(decodeBytes(tb.enc, tb.raw))
		tb.raw = tb.raw[:0]
	}
}

func (tb *textBuffer) String() string {
	tb.flush()
	return tb.b.String()
}

func (tb *textBuffer) Reset() {
	tb.b.Reset()
	tb.raw = tb.raw[:0]
}
