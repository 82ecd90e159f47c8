// Package debug renders human readable dumps of internal structures.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is a named value printed by TreeWriter.Fields. Fields with empty
// values are omitted.
type Field struct {
	Key   string
	Value string
}

// F is a shortcut to build Field from any value.
func F(key string, value any) Field {
	switch v := value.(type) {
	case string:
		return Field{Key: key, Value: v}
	case bool:
		if !v {
			return Field{Key: key}
		}
		return Field{Key: key, Value: "true"}
	case fmt.Stringer:
		return Field{Key: key, Value: v.String()}
	default:
		return Field{Key: key, Value: fmt.Sprint(v)}
	}
}

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Fields writes label followed by non-empty key=value pairs on a single line.
func (tw TreeWriter) Fields(depth int, label string, fields ...Field) {
	tw.indent(depth)
	tw.w.WriteString(label)
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		tw.w.WriteByte(' ')
		tw.w.WriteString(f.Key)
		tw.w.WriteByte('=')
		if strings.ContainsAny(f.Value, " \t\n\"") {
			tw.w.WriteString(strconv.Quote(f.Value))
		} else {
			tw.w.WriteString(f.Value)
		}
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
