package css

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses style blocks and inline declarations.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css")}
}

// ParseDeclarations parses content of a style attribute. Property names are
// lowercased, later declarations override earlier ones.
func (p *Parser) ParseDeclarations(data []byte) map[string]Value {
	props := make(map[string]Value)
	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), true)
	for {
		gt, _, name := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.atEnd(parser) {
				return props
			}
		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				props[strings.ToLower(string(name))] = parsePropertyValue(values)
			}
		}
	}
}

// Parse parses style block. Only rules with simple selectors are kept, at-rules
// are skipped.
func (p *Parser) Parse(data []byte) *Stylesheet {
	sheet := &Stylesheet{}
	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.atEnd(parser) {
				return sheet
			}

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.ByteString("rule", data))
			skipBlock(parser)

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.ByteString("rule", data))

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			props := p.declarations(parser)
			for _, raw := range selectors {
				sel, ok := parseSelector(raw)
				if !ok {
					sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+raw)
					p.log.Debug("Skipping selector", zap.String("selector", raw))
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Properties: maps.Clone(props)})
			}
		}
	}
}

func (p *Parser) declarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.atEnd(parser) {
				return props
			}
		case css.EndRulesetGrammar:
			return props
		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				props[strings.ToLower(string(data))] = parsePropertyValue(values)
			}
		}
	}
}

// atEnd tells end of input from recoverable declaration errors, parser
// reports both as ErrorGrammar.
func (p *Parser) atEnd(parser *css.Parser) bool {
	err := parser.Err()
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	p.log.Debug("CSS parse error", zap.Error(err))
	return false
}

func skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseSelector accepts element, .class and element.class.
func parseSelector(raw string) (Selector, bool) {
	sel := Selector{Raw: raw}
	if strings.ContainsAny(raw, " \t\n+~>[:*#") {
		return sel, false
	}
	element, class, _ := strings.Cut(raw, ".")
	if strings.Contains(class, ".") {
		return sel, false
	}
	sel.Element, sel.Class = strings.ToLower(element), class
	return sel, sel.IsSimple()
}

// parsePropertyValue converts value tokens to Value.
func parsePropertyValue(tokens []css.Token) Value {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(parts, ""))
	val := Value{Raw: raw}

	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		default:
			val.Keyword = raw
		}
		return val
	}
	// functions like rgb() and multi token values
	val.Keyword = raw
	return val
}

// parseDimension splits dimension token into number and lowercase unit.
func parseDimension(s string) (float64, string) {
	end := 0
	for i, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+' {
			break
		}
		end = i + 1
	}
	if end == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:end], 64)
	return num, strings.ToLower(s[end:])
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// Families splits font-family value into unquoted family names.
func Families(v Value) []string {
	var out []string
	for f := range strings.SplitSeq(v.Raw, ",") {
		if f = unquote(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
