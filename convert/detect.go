package convert

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
	fixzip "github.com/hidez8891/zip"

	"rtd/common"
	"rtd/content"
)

// enough for filetype matchers and for markup signatures after BOM
const sniffLen = 512

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

func headOf(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readHead(f)
}

// isArchiveFile reports zip archives. Office containers are zip files too,
// filetype tells them apart by content.
func isArchiveFile(path string) (bool, error) {
	head, err := headOf(path)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return false, nil
	}
	return kind.Extension == "zip", nil
}

// documentKind decides whether entry found while scanning should be
// processed. Markup with signature is always taken, plain text only when file
// name says so.
func documentKind(head []byte, name string) common.InputFmt {
	format := content.Detect(head, name)
	switch {
	case format == common.InputFmtRtf:
		return format
	case format == common.InputFmtUnknown, !content.KnownSource(name):
		return common.InputFmtUnknown
	}
	return format
}

func isDocumentFile(path string) (common.InputFmt, error) {
	head, err := headOf(path)
	if err != nil {
		return common.InputFmtUnknown, err
	}
	return documentKind(head, path), nil
}

func isDocumentInArchive(f *fixzip.File) (common.InputFmt, error) {
	r, err := f.Open()
	if err != nil {
		return common.InputFmtUnknown, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return common.InputFmtUnknown, err
	}
	return documentKind(head, f.Name), nil
}
