package rtf

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding"
)

// escaper writes document text as markup safe character sequences.
type escaper struct {
	enc   encoding.Encoding
	above rune
}

func (e escaper) write(b *strings.Builder, s string) {
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\line `)
		case r == '\t':
			b.WriteString(`\tab `)
		case r < 0x20:
			e.unicode(b, r)
		case r < 0x80:
			b.WriteRune(r)
		case r <= e.above:
			if c, ok := singleByte(e.enc, r); ok {
				hex(b, c)
				continue
			}
			e.unicode(b, r)
		default:
			e.unicode(b, r)
		}
	}
}

// fontName writes font table entry name. Semicolon terminates entries, so
// it goes as code page byte.
func (e escaper) fontName(b *strings.Builder, name string) {
	for i, part := range strings.Split(name, ";") {
		if i > 0 {
			hex(b, ';')
		}
		e.write(b, part)
	}
}

func hex(b *strings.Builder, c byte) {
	const digits = "0123456789abcdef"
	b.WriteString(`\'`)
	b.WriteByte(digits[c>>4])
	b.WriteByte(digits[c&0x0f])
}

// unicode writes \uN with signed 16 bit parameter followed by single '?'
// fallback character, runes outside of BMP go as surrogate pair.
func (e escaper) unicode(b *strings.Builder, r rune) {
	units := utf16.Encode([]rune{r})
	for _, u := range units {
		b.WriteString(`\u`)
		b.WriteString(strconv.Itoa(int(int16(u))))
		b.WriteByte('?')
	}
}
