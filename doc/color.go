package doc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is packed ARGB. Zero is "inherit" when used in a SpanStyle and
// "automatic" (renderer default) in a resolved Style.
type Color uint32

// ColorAuto explicitly resets inherited color to automatic in a SpanStyle.
const ColorAuto Color = 0x00000001

// RGB returns opaque color from components.
func RGB(r, g, b uint8) Color {
	return Color(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// IsRGB reports whether color carries actual components.
func (c Color) IsRGB() bool {
	return c>>24 == 0xFF
}

func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns "#rrggbb" for actual colors and empty string otherwise.
func (c Color) Hex() string {
	if !c.IsRGB() {
		return ""
	}
	r, g, b := c.Components()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func (c Color) String() string {
	switch {
	case c == 0:
		return ""
	case c == ColorAuto:
		return "auto"
	default:
		return c.Hex()
	}
}

// ParseColor understands CSS hex notation, rgb() and named colors. Values
// which do not name a concrete color (transparent, inherit) are rejected.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "", s == "transparent", s == "inherit", s == "initial", s == "currentcolor":
		return 0, false
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return 0, false
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), true
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	default:
		tc := tcell.GetColor(s)
		if tc == tcell.ColorDefault || !tc.Valid() {
			return 0, false
		}
		r, g, b := tc.RGB()
		if r < 0 {
			return 0, false
		}
		return RGB(uint8(r), uint8(g), uint8(b)), true
	}
}

func parseRGBFunc(s string) (Color, bool) {
	open, closing := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || closing < open {
		return 0, false
	}
	parts := strings.FieldsFunc(s[open+1:closing], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) < 3 {
		return 0, false
	}
	var rgb [3]uint8
	for i, p := range parts[:3] {
		var (
			v   float64
			err error
		)
		if pct, ok := strings.CutSuffix(p, "%"); ok {
			v, err = strconv.ParseFloat(pct, 64)
			v = v * 255 / 100
		} else {
			v, err = strconv.ParseFloat(p, 64)
		}
		if err != nil {
			return 0, false
		}
		rgb[i] = uint8(max(min(math.Round(v), 255), 0))
	}
	return RGB(rgb[0], rgb[1], rgb[2]), true
}
