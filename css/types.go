// Package css parses the small subset of CSS found in rich text fragments:
// inline style attributes and style blocks with simple selectors.
package css

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // original value text, e.g. "12pt", "bold", "#ff0000"
	Value   float64 // numeric part if any
	Unit    string  // lowercase unit: "pt", "px", "em", "%"
	Keyword string  // lowercase identifier, unquoted string or raw function text
}

// IsNumeric returns true if the value has a numeric component, including
// explicit zero like "0".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Keyword != "" {
		return false
	}
	if v.Value != 0 {
		return true
	}
	if v.Raw != "" {
		c := rune(v.Raw[0])
		return unicode.IsDigit(c) || c == '.' || c == '-' || c == '+'
	}
	return false
}

// Selector is a simple selector: element, .class or element.class.
type Selector struct {
	Raw     string
	Element string
	Class   string
}

func (s Selector) IsSimple() bool {
	return s.Element != "" || s.Class != ""
}

// specificity orders rules so more specific ones are applied last.
func (s Selector) specificity() int {
	n := 0
	if s.Element != "" {
		n++
	}
	if s.Class != "" {
		n += 10
	}
	return n
}

func (s Selector) matches(element string, classes []string) bool {
	if s.Element != "" && !strings.EqualFold(s.Element, element) {
		return false
	}
	if s.Class != "" && !slices.Contains(classes, s.Class) {
		return false
	}
	return s.IsSimple()
}

// Rule is a single selector with its declarations.
type Rule struct {
	Selector   Selector
	Properties map[string]Value
}

// Stylesheet holds rules in source order.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// Match returns declarations applying to element with given classes.
// Rules are merged by specificity, source order breaks ties.
func (s *Stylesheet) Match(element string, classes []string) map[string]Value {
	if s == nil {
		return nil
	}
	var matched []Rule
	for _, r := range s.Rules {
		if r.Selector.matches(element, classes) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	slices.SortStableFunc(matched, func(a, b Rule) int {
		return cmp.Compare(a.Selector.specificity(), b.Selector.specificity())
	})
	props := make(map[string]Value)
	for _, r := range matched {
		maps.Copy(props, r.Properties)
	}
	return props
}

// WriteTo writes stylesheet back as CSS text, properties sorted by name.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range s.Rules {
		n, err := fmt.Fprintf(w, "%s {\n", r.Selector.Raw)
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, name := range slices.Sorted(maps.Keys(r.Properties)) {
			n, err = fmt.Fprintf(w, "  %s: %s;\n", name, r.Properties[name].Raw)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err = io.WriteString(w, "}\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Stylesheet) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}
