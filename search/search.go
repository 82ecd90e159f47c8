// Package search finds, highlights and replaces literal text in styled
// documents. Matching is case-insensitive and never crosses text run
// boundaries. All functions leave their input untouched and return a new
// document.
package search

import (
	"regexp"

	"rtd/doc"
)

// Match is a single marked occurrence.
type Match struct {
	Paragraph int
	Node      *doc.Node
	Start     int // byte offsets in Node.Text
	End       int
	Text      string
}

func pattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

func mustDocument(d *doc.Document) {
	if d == nil {
		panic("search: nil document")
	}
}

// Mark returns copy of the document with every non-overlapping occurrence of
// query marked, marks from earlier calls are discarded. Empty query marks
// nothing.
func Mark(d *doc.Document, query string) *doc.Document {
	mustDocument(d)
	out := Unmark(d)
	if query == "" {
		return out
	}
	re := pattern(query)
	out.Walk(func(_ int, n *doc.Node, _ doc.Style) {
		for _, loc := range re.FindAllStringIndex(n.Text, -1) {
			n.Marks = append(n.Marks, doc.Mark{Start: loc[0], End: loc[1]})
		}
	})
	return out
}

// Unmark returns copy of the document without marks.
func Unmark(d *doc.Document) *doc.Document {
	mustDocument(d)
	out := d.Clone()
	out.Walk(func(_ int, n *doc.Node, _ doc.Style) {
		n.Marks = nil
	})
	return out
}

// Replace substitutes every occurrence of query, keeping style of the run
// where it was found, and drops marks. It returns the new document and
// number of replacements. Empty query returns unchanged copy with marks
// intact, empty replacement deletes matched text.
func Replace(d *doc.Document, query, replacement string) (*doc.Document, int) {
	mustDocument(d)
	if query == "" {
		return d.Clone(), 0
	}
	out := Unmark(d)
	re := pattern(query)
	count := 0
	out.Walk(func(_ int, n *doc.Node, _ doc.Style) {
		if found := len(re.FindAllStringIndex(n.Text, -1)); found > 0 {
			count += found
			n.Text = re.ReplaceAllLiteralString(n.Text, replacement)
		}
	})
	if count > 0 {
		out.Normalize()
	}
	return out, count
}

// Matches lists marks in document order.
func Matches(d *doc.Document) []Match {
	mustDocument(d)
	var matches []Match
	d.Walk(func(para int, n *doc.Node, _ doc.Style) {
		for _, m := range n.Marks {
			matches = append(matches, Match{
				Paragraph: para,
				Node:      n,
				Start:     m.Start,
				End:       m.End,
				Text:      n.Text[m.Start:m.End],
			})
		}
	})
	return matches
}
