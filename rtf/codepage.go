package rtf

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCodePage is used when markup does not declare one or declares
// unknown one.
const DefaultCodePage = 1252

var codepages = map[int]encoding.Encoding{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	10007: charmap.MacintoshCyrillic,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28595: charmap.ISO8859_5,
	28599: charmap.ISO8859_9,
	28605: charmap.ISO8859_15,
	65001: unicode.UTF8,
}

// CodePage returns encoding for Windows code page number.
func CodePage(cp int) (encoding.Encoding, error) {
	if enc, ok := codepages[cp]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(fmt.Sprintf("windows-%d", cp))
	if err != nil {
		return nil, fmt.Errorf("unknown code page %d: %w", cp, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported code page %d", cp)
	}
	return enc, nil
}

// singleByte returns code page byte for the rune if encoding is able to
// represent it as a single byte.
func singleByte(enc encoding.Encoding, r rune) (byte, bool) {
	if enc == nil || enc == unicode.UTF8 {
		return 0, false
	}
	if cm, ok := enc.(*charmap.Charmap); ok {
		return cm.EncodeRune(r)
	}
	out, err := enc.NewEncoder().String(string(r))
	if err != nil || len(out) != 1 {
		return 0, false
	}
	return out[0], true
}

// decodeBytes converts code page bytes to text, undecodable bytes become
// replacement characters.
func decodeBytes(enc encoding.Encoding, b []byte) string {
	if enc == nil {
		enc = charmap.Windows1252
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
