package doc

import "testing"

func TestSpanStyle_Apply(t *testing.T) {
	red := RGB(255, 0, 0)
	parent := Style{Font: "Arial", Size: 24, Fore: red, Bold: true, Link: "http://a"}

	tests := []struct {
		name  string
		delta SpanStyle
		want  Style
	}{
		{
			name:  "zero inherits everything",
			delta: SpanStyle{},
			want:  parent,
		},
		{
			name:  "font and size",
			delta: SpanStyle{Font: "Georgia", Size: 36},
			want:  Style{Font: "Georgia", Size: 36, Fore: red, Bold: true, Link: "http://a"},
		},
		{
			name:  "toggle off and on",
			delta: SpanStyle{Bold: ToggleOff, Italic: ToggleOn},
			want:  Style{Font: "Arial", Size: 24, Fore: red, Italic: true, Link: "http://a"},
		},
		{
			name:  "color reset to automatic",
			delta: SpanStyle{Fore: ColorAuto, Back: RGB(0, 0, 255)},
			want:  Style{Font: "Arial", Size: 24, Back: RGB(0, 0, 255), Bold: true, Link: "http://a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.delta.Apply(parent); got != tt.want {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDelta(t *testing.T) {
	base := Style{Font: "Arial", Size: 24, Fore: RGB(1, 2, 3)}
	targets := []Style{
		base,
		{Font: "Georgia", Size: 24},
		{Font: "Arial", Size: 48, Fore: RGB(1, 2, 3), Back: RGB(9, 9, 9), Underline: true},
		{Font: "Arial", Size: 24, Fore: RGB(1, 2, 3), Bold: true, Italic: true, Link: "x"},
	}
	for _, target := range targets {
		d := Delta(base, target)
		if got := d.Apply(base); got != target {
			t.Errorf("Delta(%+v).Apply() = %+v, want %+v", target, got, target)
		}
	}
	if d := Delta(base, base); !d.IsZero() {
		t.Errorf("Delta of identical styles = %+v, want zero", d)
	}
}

func TestSpanStyle_Merge(t *testing.T) {
	s := SpanStyle{Font: "Arial", Bold: ToggleOn, Fore: RGB(1, 1, 1)}
	got := s.Merge(SpanStyle{Size: 36, Bold: ToggleOff})
	want := SpanStyle{Font: "Arial", Size: 36, Bold: ToggleOff, Fore: RGB(1, 1, 1)}
	if got != want {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
}

func TestColor(t *testing.T) {
	c := RGB(0x12, 0xab, 0xff)
	if !c.IsRGB() {
		t.Error("RGB color must report IsRGB")
	}
	if c.Hex() != "#12abff" {
		t.Errorf("Hex() = %q, want #12abff", c.Hex())
	}
	if r, g, b := c.Components(); r != 0x12 || g != 0xab || b != 0xff {
		t.Errorf("Components() = %d,%d,%d", r, g, b)
	}
	if ColorAuto.IsRGB() || Color(0).IsRGB() {
		t.Error("sentinels must not be RGB")
	}
	if ColorAuto.String() != "auto" || Color(0).String() != "" {
		t.Errorf("unexpected sentinel strings %q %q", ColorAuto.String(), Color(0).String())
	}
	if RGB(0, 0, 0) == 0 {
		t.Error("black must differ from inherit")
	}
}

func TestLegacySizes(t *testing.T) {
	for n, hp := range map[int]int{1: 16, 2: 20, 3: 24, 4: 28, 5: 36, 6: 48, 7: 72, 0: 16, 9: 72} {
		if got := LegacyToHalfPoints(n); got != hp {
			t.Errorf("LegacyToHalfPoints(%d) = %d, want %d", n, got, hp)
		}
	}
	for hp, n := range map[int]int{16: 1, 24: 3, 26: 3, 27: 4, 32: 4, 40: 5, 100: 7, 2: 1} {
		if got := HalfPointsToLegacy(hp); got != n {
			t.Errorf("HalfPointsToLegacy(%d) = %d, want %d", hp, got, n)
		}
	}

	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{"+1", 4, true},
		{"-2", 1, true},
		{"+9", 7, true},
		{" 2 ", 2, true},
		{"", 0, false},
		{"big", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLegacySize(tt.in, 3)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLegacySize(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#ff0000", RGB(255, 0, 0), true},
		{"#0F0", RGB(0, 255, 0), true},
		{"rgb(1, 2, 3)", RGB(1, 2, 3), true},
		{"rgb(100%, 0%, 50%)", RGB(255, 0, 128), true},
		{"rgba(10 20 30 / 0.5)", RGB(10, 20, 30), true},
		{"navy", RGB(0, 0, 128), true},
		{"Black", RGB(0, 0, 0), true},
		{"transparent", 0, false},
		{"#zzz", 0, false},
		{"rgb(1,2)", 0, false},
		{"nosuchcolor", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseColor(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
