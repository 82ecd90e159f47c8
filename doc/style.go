package doc

// Toggle is tri-state flag used by style deltas, zero value inherits.
type Toggle uint8

const (
	ToggleInherit Toggle = iota
	ToggleOff
	ToggleOn
)

// Bool converts flag to explicit toggle.
func Bool(b bool) Toggle {
	if b {
		return ToggleOn
	}
	return ToggleOff
}

func (t Toggle) apply(parent bool) bool {
	switch t {
	case ToggleOn:
		return true
	case ToggleOff:
		return false
	default:
		return parent
	}
}

func (t Toggle) String() string {
	switch t {
	case ToggleOn:
		return "on"
	case ToggleOff:
		return "off"
	default:
		return ""
	}
}

// Style is the effective formatting of a piece of text. Size is in
// half-points. Styles are comparable and equal styles format identically.
type Style struct {
	Font      string
	Size      int
	Fore      Color
	Back      Color
	Bold      bool
	Italic    bool
	Underline bool
	Link      string
}

// SpanStyle is the formatting a node sets on top of what it inherits. Zero
// fields inherit from the enclosing node.
type SpanStyle struct {
	Font      string
	Size      int
	Fore      Color
	Back      Color
	Bold      Toggle
	Italic    Toggle
	Underline Toggle
	Link      string
}

func (s SpanStyle) IsZero() bool {
	return s == SpanStyle{}
}

// Apply resolves delta against parent style.
func (s SpanStyle) Apply(parent Style) Style {
	out := parent
	if s.Font != "" {
		out.Font = s.Font
	}
	if s.Size > 0 {
		out.Size = s.Size
	}
	out.Fore = applyColor(s.Fore, parent.Fore)
	out.Back = applyColor(s.Back, parent.Back)
	out.Bold = s.Bold.apply(parent.Bold)
	out.Italic = s.Italic.apply(parent.Italic)
	out.Underline = s.Underline.apply(parent.Underline)
	if s.Link != "" {
		out.Link = s.Link
	}
	return out
}

// Merge overlays non-zero fields of over on top of s.
func (s SpanStyle) Merge(over SpanStyle) SpanStyle {
	if over.Font != "" {
		s.Font = over.Font
	}
	if over.Size > 0 {
		s.Size = over.Size
	}
	if over.Fore != 0 {
		s.Fore = over.Fore
	}
	if over.Back != 0 {
		s.Back = over.Back
	}
	if over.Bold != ToggleInherit {
		s.Bold = over.Bold
	}
	if over.Italic != ToggleInherit {
		s.Italic = over.Italic
	}
	if over.Underline != ToggleInherit {
		s.Underline = over.Underline
	}
	if over.Link != "" {
		s.Link = over.Link
	}
	return s
}

func applyColor(delta, parent Color) Color {
	switch delta {
	case 0:
		return parent
	case ColorAuto:
		return 0
	default:
		return delta
	}
}

// Delta returns the smallest SpanStyle turning base into target. Link cannot
// be removed by a delta, target without link under linked base keeps it.
func Delta(base, target Style) SpanStyle {
	var s SpanStyle
	if target.Font != base.Font {
		s.Font = target.Font
	}
	if target.Size != base.Size {
		s.Size = target.Size
	}
	s.Fore = deltaColor(base.Fore, target.Fore)
	s.Back = deltaColor(base.Back, target.Back)
	if target.Bold != base.Bold {
		s.Bold = Bool(target.Bold)
	}
	if target.Italic != base.Italic {
		s.Italic = Bool(target.Italic)
	}
	if target.Underline != base.Underline {
		s.Underline = Bool(target.Underline)
	}
	if target.Link != base.Link {
		s.Link = target.Link
	}
	return s
}

func deltaColor(base, target Color) Color {
	switch {
	case base == target:
		return 0
	case target == 0:
		return ColorAuto
	default:
		return target
	}
}
