package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	sprig "github.com/go-task/slim-sprig/v3"

	"rtd/common"
	"rtd/config"
	"rtd/content"
)

// Values holds variables available for template expansion.
type Values struct {
	Context     string
	Title       string
	Format      string
	InputFormat string
	SourceFile  string
	DocID       string
	Font        string
	Paragraphs  int
}

// titleLen limits length of the title taken from document text, in runes.
const titleLen = 64

// documentTitle is the first non-blank line of the document.
func documentTitle(c *content.Content) string {
	for line := range strings.Lines(c.Doc.PlainText()) {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > titleLen {
			line = strings.TrimSpace(string([]rune(line)[:titleLen]))
		}
		return line
	}
	return ""
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string, format common.OutputFmt) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:     string(name),
		Title:       documentTitle(c),
		Format:      format.String(),
		InputFormat: c.Format.String(),
		SourceFile:  strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		DocID:       c.Doc.ID,
		Font:        c.Doc.Defaults.Font,
		Paragraphs:  len(c.Doc.Paragraphs),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
