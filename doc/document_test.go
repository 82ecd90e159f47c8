package doc

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func sampleDocument() *Document {
	bold := SpanStyle{Bold: ToggleOn}
	return New(Defaults{Font: "Arial", Size: 24},
		Paragraph(
			Text("Hello "),
			Span(bold,
				Text("bold "),
				StyledText("italic", SpanStyle{Italic: ToggleOn}),
			),
		),
		Paragraph(
			Span(SpanStyle{Font: "Georgia", Fore: RGB(255, 0, 0)},
				StyledText("red", SpanStyle{Size: 36}),
			),
		),
	)
}

func TestNew(t *testing.T) {
	d := New(Defaults{})
	if d.Defaults != DefaultDefaults() {
		t.Errorf("Defaults = %+v, want %+v", d.Defaults, DefaultDefaults())
	}
	id, err := uuid.Parse(d.ID)
	if err != nil {
		t.Fatalf("ID %q is not UUID: %v", d.ID, err)
	}
	if id.Version() != 7 {
		t.Errorf("ID version = %d, want 7", id.Version())
	}
	if New(Defaults{}).ID == d.ID {
		t.Error("IDs must be unique")
	}
}

func TestDocument_Runs(t *testing.T) {
	runs := sampleDocument().Runs()

	want := []struct {
		para int
		text string
		st   Style
	}{
		{0, "Hello ", Style{Font: "Arial", Size: 24}},
		{0, "bold ", Style{Font: "Arial", Size: 24, Bold: true}},
		{0, "italic", Style{Font: "Arial", Size: 24, Bold: true, Italic: true}},
		{1, "red", Style{Font: "Georgia", Size: 36, Fore: RGB(255, 0, 0)}},
	}
	if len(runs) != len(want) {
		t.Fatalf("Runs() returned %d runs, want %d", len(runs), len(want))
	}
	for i, w := range want {
		if runs[i].Paragraph != w.para || runs[i].Node.Text != w.text || runs[i].Style != w.st {
			t.Errorf("run %d = (%d %q %+v), want (%d %q %+v)", i,
				runs[i].Paragraph, runs[i].Node.Text, runs[i].Style, w.para, w.text, w.st)
		}
	}
}

func TestDocument_PlainText(t *testing.T) {
	d := sampleDocument()
	if got := d.PlainText(); got != "Hello bold italic\nred" {
		t.Errorf("PlainText() = %q", got)
	}
	if d.IsEmpty() {
		t.Error("IsEmpty() = true for document with text")
	}
	if !New(Defaults{}).IsEmpty() {
		t.Error("new document must be empty")
	}
	if !New(Defaults{}, Paragraph(Span(SpanStyle{Bold: ToggleOn}, Text("")))).IsEmpty() {
		t.Error("document with empty containers must be empty")
	}
}

func TestFromPlainText(t *testing.T) {
	d := FromPlainText("one\r\ntwo\n\nfour", DefaultDefaults())
	if len(d.Paragraphs) != 4 {
		t.Fatalf("paragraphs = %d, want 4", len(d.Paragraphs))
	}
	if d.PlainText() != "one\ntwo\n\nfour" {
		t.Errorf("PlainText() = %q", d.PlainText())
	}
	for _, r := range d.Runs() {
		if !r.Node.Style.IsZero() {
			t.Errorf("run %q must be unstyled", r.Node.Text)
		}
		if len(d.Paragraphs[r.Paragraph].Children) != 1 {
			t.Errorf("paragraph %d must hold a single run", r.Paragraph)
		}
	}
}

func TestFlattenBuild(t *testing.T) {
	d := sampleDocument()
	cells := d.Flatten()

	breaks := 0
	for _, c := range cells {
		if c.Break {
			breaks++
		}
	}
	if breaks != 1 {
		t.Errorf("breaks = %d, want 1", breaks)
	}

	rebuilt := &Document{Defaults: d.Defaults, Paragraphs: Build(cells, d.Defaults)}
	if !Equivalent(d, rebuilt) {
		t.Errorf("rebuilt document differs:\n%s\nvs\n%s", d, rebuilt)
	}
	// bold and italic runs stay separate, neighbours with same style merge
	if n := len(rebuilt.Paragraphs[0].Children); n != 3 {
		t.Errorf("first paragraph has %d runs, want 3", n)
	}

	empty := Build(nil, d.Defaults)
	if len(empty) != 1 || len(empty[0].Children) != 0 {
		t.Errorf("Build(nil) = %d paragraphs, want single empty one", len(empty))
	}
}

func TestEquivalent(t *testing.T) {
	a := New(DefaultDefaults(), Paragraph(Text("ab")))
	b := New(DefaultDefaults(), Paragraph(Text("a"), Text("b")))
	if !Equivalent(a, b) {
		t.Error("split runs with same style must be equivalent")
	}

	c := New(DefaultDefaults(), Paragraph(Text("a"), StyledText("b", SpanStyle{Bold: ToggleOn})))
	if Equivalent(a, c) {
		t.Error("different formatting must not be equivalent")
	}

	e := New(DefaultDefaults(), Paragraph(Text("a")), Paragraph(Text("b")))
	if Equivalent(a, e) {
		t.Error("different paragraphs must not be equivalent")
	}

	// same effective style through different defaults
	f := New(Defaults{Font: "Georgia", Size: 36}, Paragraph(StyledText("ab", SpanStyle{Font: "Arial", Size: 24})))
	if !Equivalent(a, f) {
		t.Error("same effective formatting must be equivalent")
	}
}

func TestNormalize(t *testing.T) {
	bold := SpanStyle{Bold: ToggleOn}
	d := New(DefaultDefaults(),
		Paragraph(
			Text(""),
			Span(bold),
			Span(SpanStyle{}, Text("a"), Text("b")),
			Text("c"),
			Span(bold, Text(""), StyledText("d", bold)),
		),
		Paragraph(),
	)
	d.Paragraphs[0].Children[3].Marks = []Mark{{0, 1}}

	d.Normalize()

	p := d.Paragraphs[0]
	if len(p.Children) != 2 {
		t.Fatalf("children = %d, want 2:\n%s", len(p.Children), d)
	}
	if p.Children[0].Text != "abc" {
		t.Errorf("merged text = %q, want abc", p.Children[0].Text)
	}
	if len(p.Children[0].Marks) != 1 || p.Children[0].Marks[0] != (Mark{2, 3}) {
		t.Errorf("marks = %v, want [{2 3}]", p.Children[0].Marks)
	}
	if p.Children[1].Kind != KindSpan || len(p.Children[1].Children) != 1 {
		t.Errorf("bold span must survive with one child")
	}
	if len(d.Paragraphs) != 2 {
		t.Errorf("empty paragraphs must be kept")
	}
}

func TestClone(t *testing.T) {
	d := sampleDocument()
	d.Last = &LastStyle{FontName: "Arial", FontSize: 3}
	c := d.Clone()

	c.Paragraphs[0].Children[0].Text = "changed"
	c.Last.Bold = true

	if d.Paragraphs[0].Children[0].Text != "Hello " {
		t.Error("clone shares nodes with original")
	}
	if d.Last.Bold {
		t.Error("clone shares last style with original")
	}
	if c.ID != d.ID {
		t.Error("clone must keep identifier")
	}
}

func TestDocument_String(t *testing.T) {
	d := sampleDocument()
	d.Paragraphs[0].Children[0].Marks = []Mark{{0, 5}}
	out := d.String()

	for _, want := range []string{
		"Document id=" + d.ID + " font=Arial size=24",
		"  Paragraph[0]",
		"    Text: \"Hello \"",
		"      marks [0:5]",
		"    Span bold=on",
		"    Span font=Georgia fore=#ff0000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}

func TestUnsupportedSourceError(t *testing.T) {
	err := error(&UnsupportedSourceError{Node: "table", Source: "a.html"})
	if err.Error() != `unsupported source format: "table" in a.html` {
		t.Errorf("Error() = %q", err.Error())
	}
	if !strings.Contains((&UnsupportedSourceError{Node: "docx"}).Error(), `"docx"`) {
		t.Error("node type must be reported")
	}
}
