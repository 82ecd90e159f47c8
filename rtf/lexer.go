// Package rtf reads and writes styled documents as RTF markup.
package rtf

import (
	"math"
	"strconv"
)

type tokenKind int

const (
	tokGroupOpen tokenKind = iota
	tokGroupClose
	tokWord   // \name or \nameN
	tokSymbol // \ followed by a single non-letter
	tokHex    // \'hh
	tokText
)

type token struct {
	kind     tokenKind
	name     string // control word, symbol or text
	param    int
	hasParam bool
	hex      byte
}

func (t token) is(kind tokenKind, name string) bool {
	return t.kind == kind && t.name == name
}

// maximum length of control word name and parameter digits
const (
	maxWordLen  = 32
	maxParamLen = 10
)

// tokenize splits markup into tokens. It never fails, malformed input yields
// whatever could be recognized.
func tokenize(data []byte) []token {
	var (
		tokens []token
		i      int
	)
	for i < len(data) {
		c := data[i]
		switch c {
		case '{':
			tokens = append(tokens, token{kind: tokGroupOpen})
			i++
		case '}':
			tokens = append(tokens, token{kind: tokGroupClose})
			i++
		case '\r', '\n':
			i++
		case '\\':
			var t token
			var ok bool
			t, i, ok = control(data, i+1)
			if ok {
				tokens = append(tokens, t)
			}
		default:
			start := i
			for i < len(data) && !isSpecial(data[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokText, name: string(data[start:i])})
		}
	}
	return tokens
}

func isSpecial(c byte) bool {
	return c == '{' || c == '}' || c == '\\' || c == '\r' || c == '\n'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// control reads control word or symbol starting right after backslash.
func control(data []byte, i int) (token, int, bool) {
	if i >= len(data) {
		return token{}, i, false
	}
	c := data[i]
	switch {
	case isLetter(c):
		start := i
		for i < len(data) && isLetter(data[i]) && i-start < maxWordLen {
			i++
		}
		t := token{kind: tokWord, name: string(data[start:i])}
		pstart := i
		if i < len(data) && data[i] == '-' && i+1 < len(data) && isDigit(data[i+1]) {
			i++
		}
		for i < len(data) && isDigit(data[i]) && i-pstart < maxParamLen {
			i++
		}
		if i > pstart {
			n, err := strconv.ParseInt(string(data[pstart:i]), 10, 64)
			if err == nil {
				t.param, t.hasParam = int(max(min(n, math.MaxInt32), math.MinInt32)), true
			}
		}
		// single space delimiter belongs to control word
		if i < len(data) && data[i] == ' ' {
			i++
		}
		return t, i, true
	case c == '\'':
		if i+3 <= len(data) {
			if v, err := strconv.ParseUint(string(data[i+1:i+3]), 16, 8); err == nil {
				return token{kind: tokHex, hex: byte(v)}, i + 3, true
			}
		}
		return token{kind: tokSymbol, name: "'"}, i + 1, true
	case c == '\r' || c == '\n':
		// escaped line break is a paragraph mark
		return token{kind: tokWord, name: "par"}, i + 1, true
	default:
		return token{kind: tokSymbol, name: string(c)}, i + 1, true
	}
}
