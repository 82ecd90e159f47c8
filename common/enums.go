// Package common keeps enumerations shared between configuration, content
// handling and command line processing.
package common

// Specification of requested output type.
// ENUM(rtf, html, txt)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtRtf:
		return ".rtf"
	case OutputFmtHtml:
		return ".html"
	case OutputFmtTxt:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Kind of recognized source document.
// ENUM(unknown, rtf, html, txt, doc, docx)
type InputFmt int

// Convertible reports if source of this kind could be turned into a document
// without external converter.
func (i InputFmt) Convertible() bool {
	return i == InputFmtRtf || i == InputFmtHtml || i == InputFmtTxt
}
