package rtf

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []token
	}{
		{
			name: "groups words and text",
			in:   `{\rtf1\b Hi\b0}`,
			want: []token{
				{kind: tokGroupOpen},
				{kind: tokWord, name: "rtf", param: 1, hasParam: true},
				{kind: tokWord, name: "b"},
				{kind: tokText, name: "Hi"},
				{kind: tokWord, name: "b", param: 0, hasParam: true},
				{kind: tokGroupClose},
			},
		},
		{
			name: "negative parameter and fallback",
			in:   `\u-10179?x`,
			want: []token{
				{kind: tokWord, name: "u", param: -10179, hasParam: true},
				{kind: tokText, name: "?x"},
			},
		},
		{
			name: "only one delimiting space is consumed",
			in:   `\i  two`,
			want: []token{
				{kind: tokWord, name: "i"},
				{kind: tokText, name: " two"},
			},
		},
		{
			name: "symbols and hex",
			in:   `\\\{\}\~\'e9\'zz`,
			want: []token{
				{kind: tokSymbol, name: `\`},
				{kind: tokSymbol, name: "{"},
				{kind: tokSymbol, name: "}"},
				{kind: tokSymbol, name: "~"},
				{kind: tokHex, hex: 0xe9},
				{kind: tokSymbol, name: "'"},
				{kind: tokText, name: "zz"},
			},
		},
		{
			name: "line breaks are ignored, escaped ones are paragraphs",
			in:   "a\r\nb\\\nc",
			want: []token{
				{kind: tokText, name: "a"},
				{kind: tokText, name: "b"},
				{kind: tokWord, name: "par"},
				{kind: tokText, name: "c"},
			},
		},
		{
			name: "dangling backslash",
			in:   `x\`,
			want: []token{
				{kind: tokText, name: "x"},
			},
		},
		{
			name: "huge parameter is clamped",
			in:   `\fs99999999999`,
			want: []token{
				{kind: tokWord, name: "fs", param: 2147483647, hasParam: true},
				{kind: tokText, name: "9"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize([]byte(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) =\n%+v\nwant\n%+v", tt.in, got, tt.want)
			}
		})
	}
}
