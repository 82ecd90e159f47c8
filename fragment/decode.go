// Package fragment converts XHTML-like fragments, as produced by external
// word processor converters and clipboard, to styled documents and back.
package fragment

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"rtd/css"
	"rtd/doc"
)

// Decoder builds documents from fragment markup.
type Decoder struct {
	defaults doc.Defaults
	css      *css.Parser
	log      *zap.Logger
}

func NewDecoder(defaults doc.Defaults, log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("fragment")
	return &Decoder{defaults: defaults, css: css.NewParser(log), log: log}
}

type elementKind int

const (
	kindUnknown elementKind = iota
	kindSkip
	kindBlock
	kindInline
	kindBreak
)

var elementKinds = map[string]elementKind{
	"head": kindSkip, "script": kindSkip, "style": kindSkip, "title": kindSkip,
	"meta": kindSkip, "link": kindSkip, "noscript": kindSkip,

	"html": kindBlock, "body": kindBlock, "div": kindBlock, "p": kindBlock,
	"h1": kindBlock, "h2": kindBlock, "h3": kindBlock, "h4": kindBlock,
	"h5": kindBlock, "h6": kindBlock, "li": kindBlock, "blockquote": kindBlock,
	"section": kindBlock, "article": kindBlock, "pre": kindBlock,
	"ul": kindBlock, "ol": kindBlock,

	"b": kindInline, "strong": kindInline, "i": kindInline, "em": kindInline,
	"u": kindInline, "ins": kindInline, "font": kindInline, "span": kindInline,
	"a": kindInline, "s": kindInline, "strike": kindInline, "del": kindInline,
	"sub": kindInline, "sup": kindInline, "small": kindInline, "big": kindInline,
	"code": kindInline, "mark": kindInline,

	"br": kindBreak,
}

// blocks which stand for a paragraph even when empty
var paragraphBlocks = map[string]bool{
	"p": true, "li": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// heading sizes follow browser defaults in legacy units
var headingSizes = map[string]int{"h1": 6, "h2": 5, "h3": 4, "h4": 3, "h5": 2, "h6": 1}

// DecodeBytes parses fragment. Fragment may have several top level elements
// and leading XML declaration or doctype.
func (d *Decoder) DecodeBytes(data []byte, source string) (*doc.Document, error) {
	tree := etree.NewDocument()
	tree.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        xml.HTMLEntity,
		AutoClose:     xml.HTMLAutoClose,
		Permissive:    true,
	}

	var buf bytes.Buffer
	buf.WriteString("<div>")
	buf.Write(stripProlog(data))
	buf.WriteString("</div>")
	if err := tree.ReadFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("unable to parse fragment: %w", err)
	}
	root := tree.Root()
	if root == nil {
		return doc.New(d.defaults), nil
	}
	return d.Decode(root, source)
}

var prologRe = regexp.MustCompile(`^\s*(<\?[^>]*\?>|<!--.*?-->|<![^>]*>)`)

func stripProlog(data []byte) []byte {
	for {
		loc := prologRe.FindIndex(data)
		if loc == nil {
			return data
		}
		data = data[loc[1]:]
	}
}

// Decode converts element tree to document. Elements which cannot be
// represented are dropped with their content, the returned error lists all
// of them while the document holds everything else.
func (d *Decoder) Decode(root *etree.Element, source string) (*doc.Document, error) {
	b := &builder{dec: d, source: source}
	for _, el := range root.FindElements("//style") {
		sheet := d.css.Parse([]byte(el.Text()))
		if b.sheet == nil {
			b.sheet = sheet
		} else {
			b.sheet.Rules = append(b.sheet.Rules, sheet.Rules...)
		}
	}
	if b.sheet != nil {
		d.log.Debug("Style rules collected", zap.String("source", source), zap.Stringer("css", b.sheet))
	}

	b.element(root, false)
	b.closeParagraph()

	document := doc.New(d.defaults, b.paragraphs...)
	document.Normalize()

	if b.errs != nil {
		d.log.Debug("Fragment elements rejected", zap.String("source", source), zap.Errors("errors", multierr.Errors(b.errs)))
	}
	return document, b.errs
}

type frame struct {
	style doc.SpanStyle
	node  *doc.Node // span in current paragraph, created on first use
}

type builder struct {
	dec        *Decoder
	source     string
	sheet      *css.Stylesheet
	paragraphs []*doc.Node
	para       *doc.Node
	frames     []*frame
	errs       error
}

// container returns node where inline content goes, opening paragraph and
// recreating span chain when needed.
func (b *builder) container() *doc.Node {
	if b.para == nil {
		b.para = doc.Paragraph()
		for _, f := range b.frames {
			f.node = nil
		}
	}
	parent := b.para
	for _, f := range b.frames {
		if f.node == nil {
			f.node = doc.Span(f.style)
			parent.Append(f.node)
		}
		parent = f.node
	}
	return parent
}

func (b *builder) closeParagraph() {
	if b.para != nil {
		b.paragraphs = append(b.paragraphs, b.para)
	}
	b.para = nil
	for _, f := range b.frames {
		f.node = nil
	}
}

func (b *builder) element(el *etree.Element, pre bool) {
	tag := strings.ToLower(el.Tag)
	kind := elementKinds[tag]
	if el.Space != "" {
		// vendor markup like <o:p> carries no formatting of its own
		kind = kindInline
	}

	switch kind {
	case kindSkip:
		return
	case kindUnknown:
		b.errs = multierr.Append(b.errs, &doc.UnsupportedSourceError{Node: tag, Source: b.source})
		b.dec.log.Debug("Unsupported element dropped", zap.String("element", tag))
		return
	case kindBreak:
		b.container().Append(doc.Text("\n"))
		return
	}

	style, preserve := b.elementStyle(el, tag)
	pre = pre || preserve || tag == "pre"

	if kind == kindBlock {
		b.closeParagraph()
	}
	before := len(b.paragraphs)

	b.frames = append(b.frames, &frame{style: style})
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			b.element(t, pre)
		case *etree.CharData:
			b.text(t.Data, pre)
		}
	}
	b.frames = b.frames[:len(b.frames)-1]

	if kind == kindBlock {
		if b.para == nil && len(b.paragraphs) == before && paragraphBlocks[tag] {
			b.paragraphs = append(b.paragraphs, doc.Paragraph())
		}
		b.closeParagraph()
	}
}

var spaceRe = regexp.MustCompile(`\s+`)

func (b *builder) text(s string, pre bool) {
	if strings.TrimSpace(s) == "" && b.para == nil {
		return
	}
	if !pre {
		s = spaceRe.ReplaceAllString(s, " ")
		if b.para == nil {
			s = strings.TrimLeft(s, " ")
		}
	} else {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	if s == "" {
		return
	}
	b.container().Append(doc.Text(s))
}

// elementStyle combines formatting implied by element, its presentational
// attributes, matching stylesheet rules and style attribute.
func (b *builder) elementStyle(el *etree.Element, tag string) (doc.SpanStyle, bool) {
	var st doc.SpanStyle
	switch tag {
	case "b", "strong":
		st.Bold = doc.ToggleOn
	case "i", "em":
		st.Italic = doc.ToggleOn
	case "u", "ins":
		st.Underline = doc.ToggleOn
	case "h1", "h2", "h3", "h4", "h5", "h6":
		st.Bold = doc.ToggleOn
		st.Size = doc.LegacyToHalfPoints(headingSizes[tag])
	case "a":
		st.Link = el.SelectAttrValue("href", "")
	case "font":
		if face := el.SelectAttrValue("face", ""); face != "" {
			if families := css.Families(css.Value{Raw: face}); len(families) > 0 {
				st.Font = families[0]
			}
		}
		if size, ok := doc.ParseLegacySize(el.SelectAttrValue("size", ""), doc.LegacyDefault); ok {
			st.Size = doc.LegacyToHalfPoints(size)
		}
		if c, ok := doc.ParseColor(el.SelectAttrValue("color", "")); ok {
			st.Fore = c
		}
	}

	var classes []string
	if cls := el.SelectAttrValue("class", ""); cls != "" {
		classes = strings.Fields(cls)
	}
	props := b.sheet.Match(tag, classes)
	if inline := el.SelectAttrValue("style", ""); inline != "" {
		if props == nil {
			props = make(map[string]css.Value)
		}
		for k, v := range b.dec.css.ParseDeclarations([]byte(inline)) {
			props[k] = v
		}
	}
	if len(props) == 0 {
		return st, false
	}
	return st.Merge(b.dec.declarationsStyle(props)), strings.HasPrefix(props["white-space"].Keyword, "pre")
}

func (d *Decoder) declarationsStyle(props map[string]css.Value) doc.SpanStyle {
	var st doc.SpanStyle

	if v, ok := props["font-weight"]; ok {
		switch {
		case v.Keyword == "bold" || v.Keyword == "bolder" || v.IsNumeric() && v.Value >= 600:
			st.Bold = doc.ToggleOn
		case v.Keyword == "normal" || v.Keyword == "lighter" || v.IsNumeric():
			st.Bold = doc.ToggleOff
		}
	}
	if v, ok := props["font-style"]; ok {
		switch v.Keyword {
		case "italic", "oblique":
			st.Italic = doc.ToggleOn
		case "normal":
			st.Italic = doc.ToggleOff
		}
	}
	for _, name := range []string{"text-decoration", "text-decoration-line"} {
		if v, ok := props[name]; ok {
			switch {
			case strings.Contains(strings.ToLower(v.Raw), "underline"):
				st.Underline = doc.ToggleOn
			case v.Keyword == "none":
				st.Underline = doc.ToggleOff
			}
		}
	}
	if v, ok := props["font-family"]; ok {
		if families := css.Families(v); len(families) > 0 {
			st.Font = families[0]
		}
	}
	if v, ok := props["font-size"]; ok {
		st.Size = d.fontSize(v)
	}
	if v, ok := props["color"]; ok {
		if c, ok := doc.ParseColor(v.Raw); ok {
			st.Fore = c
		}
	}
	for _, name := range []string{"background", "background-color"} {
		v, ok := props[name]
		if !ok {
			continue
		}
		for part := range strings.FieldsSeq(v.Raw) {
			if c, ok := doc.ParseColor(part); ok {
				st.Back = c
				break
			}
		}
	}
	return st
}

var sizeKeywords = map[string]int{
	"xx-small": 1, "x-small": 2, "small": 3, "medium": 3,
	"large": 4, "x-large": 5, "xx-large": 6, "xxx-large": 7,
}

// fontSize converts CSS size to half-points, 0 when not understood.
func (d *Decoder) fontSize(v css.Value) int {
	var hp float64
	switch v.Unit {
	case "pt":
		hp = v.Value * 2
	case "px":
		hp = v.Value * 0.75 * 2
	case "em", "rem":
		hp = v.Value * float64(d.defaults.Size)
	case "%":
		hp = v.Value / 100 * float64(d.defaults.Size)
	default:
		if n, ok := sizeKeywords[v.Keyword]; ok {
			return doc.LegacyToHalfPoints(n)
		}
		return 0
	}
	return max(int(math.Round(hp)), 0)
}
