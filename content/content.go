// Package content recognizes source documents, turns them into styled
// documents and renders documents into requested output format.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"rtd/common"
	"rtd/doc"
	"rtd/fragment"
	"rtd/rtf"
	"rtd/state"
)

// Content is a source document prepared for processing.
type Content struct {
	SrcName string
	Format  common.InputFmt
	// Charset is the name of encoding text sources were decoded from.
	Charset string
	Doc     *doc.Document
	// Rejected keeps parts of the source which could not be mapped to a
	// styled tree (combined UnsupportedSourceError values). Doc holds
	// everything else.
	Rejected error
}

var extensions = map[string]common.InputFmt{
	".rtf":   common.InputFmtRtf,
	".htm":   common.InputFmtHtml,
	".html":  common.InputFmtHtml,
	".xhtml": common.InputFmtHtml,
	".txt":   common.InputFmtTxt,
	".text":  common.InputFmtTxt,
	".doc":   common.InputFmtDoc,
	".docx":  common.InputFmtDocx,
}

// KnownSource reports whether file name carries extension of a supported
// source kind.
func KnownSource(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Detect guesses source kind from its content falling back to file name
// extension.
func Detect(data []byte, name string) common.InputFmt {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case "rtf":
			return common.InputFmtRtf
		case "doc":
			return common.InputFmtDoc
		case "docx":
			return common.InputFmtDocx
		}
	}

	head := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if bytes.HasPrefix(head, []byte(`{\rtf`)) {
		return common.InputFmtRtf
	}
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f
	}
	switch {
	case bytes.HasPrefix(head, []byte("<")):
		return common.InputFmtHtml
	case bytes.IndexByte(head, 0) < 0:
		return common.InputFmtTxt
	}
	return common.InputFmtUnknown
}

// Prepare reads source and builds styled document from it. Sources which
// require external converter are rejected with doc.UnsupportedSourceError.
func Prepare(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read '%s': %w", srcName, err)
	}

	c := &Content{SrcName: srcName, Format: Detect(data, srcName)}
	log.Debug("Source detected", zap.String("file", srcName), zap.Stringer("format", c.Format), zap.Int("size", len(data)))

	defaults := env.Defaults()
	switch c.Format {
	case common.InputFmtRtf:
		c.Doc = rtf.NewDecoder(defaults, log).Decode(data)
	case common.InputFmtHtml:
		text, name := decodeText(data, "text/html", nil)
		c.Charset = name
		c.Doc, c.Rejected = fragment.NewDecoder(defaults, log).DecodeBytes(text, srcName)
	case common.InputFmtTxt:
		text, name := decodeText(data, "text/plain", env.CodePage)
		c.Charset = name
		c.Doc = doc.FromPlainText(string(text), defaults)
	case common.InputFmtUnknown:
		return nil, fmt.Errorf("unable to recognize '%s': %w", srcName, &doc.UnsupportedSourceError{Node: "unknown", Source: srcName})
	default:
		return nil, &doc.UnsupportedSourceError{Node: c.Format.String(), Source: srcName}
	}

	if env.Rpt != nil {
		base := filepath.Base(srcName)
		env.Rpt.StoreData(base, data)
		env.Rpt.StoreData(base+"_parsed", []byte(c.String()))
	}
	return c, nil
}

// decodeText converts text to UTF-8. Encoding is detected from byte order
// mark or markup, forced encoding (if any) replaces guesses.
func decodeText(data []byte, contentType string, forced encoding.Encoding) ([]byte, string) {
	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if !certain && forced != nil {
		enc, name = forced, "forced"
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return data, "utf-8"
	}
	return bytes.TrimPrefix(out, []byte("\xef\xbb\xbf")), name
}

// Export renders document in requested format.
func Export(d *doc.Document, format common.OutputFmt, opts rtf.Options, log *zap.Logger) ([]byte, error) {
	switch format {
	case common.OutputFmtRtf:
		return rtf.NewEncoder(opts, log).Encode(d), nil
	case common.OutputFmtHtml:
		out, err := fragment.NewEncoder(log).Encode(d).WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("unable to produce html: %w", err)
		}
		return out, nil
	case common.OutputFmtTxt:
		return []byte(d.PlainText()), nil
	default:
		return nil, fmt.Errorf("unsupported output format %s", format)
	}
}
