package content

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"

	"rtd/common"
	"rtd/config"
	"rtd/doc"
	"rtd/rtf"
	"rtd/state"
)

func setupTestEnv(t *testing.T) (context.Context, *zap.Logger) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, logger
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data string
		file string
		want common.InputFmt
	}{
		{"rtf by content", `{\rtf1\ansi hi}`, "notes.txt", common.InputFmtRtf},
		{"rtf after bom", "\xef\xbb\xbf  {\\rtf1 hi}", "", common.InputFmtRtf},
		{"html by extension", "hello", "page.HTM", common.InputFmtHtml},
		{"html by content", "  <p>x</p>", "clip", common.InputFmtHtml},
		{"text by extension", "<not markup>", "a.txt", common.InputFmtTxt},
		{"text by content", "just words", "README", common.InputFmtTxt},
		{"empty", "", "", common.InputFmtTxt},
		{"doc by extension", "bin\x00ary", "letter.doc", common.InputFmtDoc},
		{"docx by extension", "PK\x03\x04garbage", "letter.docx", common.InputFmtDocx},
		{"binary", "\x01\x00\x02", "blob", common.InputFmtUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect([]byte(tt.data), tt.file); got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKnownSource(t *testing.T) {
	for name, want := range map[string]bool{
		"a.RTF":       true,
		"dir/b.xhtml": true,
		"c.docx":      true,
		"main.go":     false,
		"README":      false,
	} {
		if got := KnownSource(name); got != want {
			t.Errorf("KnownSource(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestPrepare(t *testing.T) {
	ctx, log := setupTestEnv(t)

	t.Run("rtf", func(t *testing.T) {
		c, err := Prepare(ctx, strings.NewReader(`{\rtf1\ansi{\fonttbl{\f0 Arial;}}\b Hi\b0\par}`), "in.rtf", log)
		if err != nil {
			t.Fatal(err)
		}
		runs := c.Doc.Runs()
		if c.Format != common.InputFmtRtf || len(runs) != 1 || runs[0].Node.Text != "Hi" || !runs[0].Style.Bold {
			t.Errorf("unexpected content:\n%s", c)
		}
	})

	t.Run("html with declared charset", func(t *testing.T) {
		src, _ := charmap.Windows1251.NewEncoder().String(`<html><head><meta charset="windows-1251"></head><body><p><b>Привет</b></p></body></html>`)
		c, err := Prepare(ctx, strings.NewReader(src), "in.html", log)
		if err != nil {
			t.Fatal(err)
		}
		if c.Doc.PlainText() != "Привет" || c.Charset != "windows-1251" {
			t.Errorf("PlainText() = %q charset %q", c.Doc.PlainText(), c.Charset)
		}
		if c.Rejected != nil {
			t.Errorf("Rejected = %v", c.Rejected)
		}
	})

	t.Run("html with unsupported parts", func(t *testing.T) {
		c, err := Prepare(ctx, strings.NewReader(`<p>a</p><table><tr><td>b</td></tr></table>`), "in.html", log)
		if err != nil {
			t.Fatal(err)
		}
		if !errors.Is(c.Rejected, doc.ErrUnsupportedSource) || c.Doc.PlainText() != "a" {
			t.Errorf("Rejected = %v, text %q", c.Rejected, c.Doc.PlainText())
		}
		if !strings.Contains(c.String(), "rejected") {
			t.Errorf("String() must mention rejections:\n%s", c)
		}
	})

	t.Run("legacy text", func(t *testing.T) {
		c, err := Prepare(ctx, bytes.NewReader([]byte("caf\xe9\r\nline")), "in.txt", log)
		if err != nil {
			t.Fatal(err)
		}
		if c.Doc.PlainText() != "café\nline" || len(c.Doc.Paragraphs) != 2 {
			t.Errorf("PlainText() = %q", c.Doc.PlainText())
		}
	})

	t.Run("forced code page", func(t *testing.T) {
		ctx, log := setupTestEnv(t)
		state.EnvFromContext(ctx).CodePage = charmap.Windows1251
		c, err := Prepare(ctx, bytes.NewReader([]byte("\xef\xf0\xe8")), "in.txt", log)
		if err != nil {
			t.Fatal(err)
		}
		if c.Doc.PlainText() != "при" {
			t.Errorf("PlainText() = %q", c.Doc.PlainText())
		}
	})

	t.Run("docx rejected", func(t *testing.T) {
		_, err := Prepare(ctx, strings.NewReader("PK\x03\x04..."), "in.docx", log)
		var use *doc.UnsupportedSourceError
		if !errors.As(err, &use) || use.Node != "docx" || use.Source != "in.docx" {
			t.Errorf("Prepare() error = %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Prepare(ctx, bytes.NewReader([]byte{1, 0, 2}), "blob", log); !errors.Is(err, doc.ErrUnsupportedSource) {
			t.Errorf("Prepare() error = %v", err)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := Prepare(cctx, strings.NewReader("x"), "x.txt", log); !errors.Is(err, context.Canceled) {
			t.Errorf("Prepare() error = %v", err)
		}
	})
}

func TestExport(t *testing.T) {
	d := doc.New(doc.DefaultDefaults(),
		doc.Paragraph(doc.Text("a "), doc.StyledText("b", doc.SpanStyle{Bold: doc.ToggleOn})),
		doc.Paragraph(doc.Text("c")),
	)
	tests := []struct {
		format common.OutputFmt
		want   string
	}{
		{common.OutputFmtRtf, `a {\b b}\par`},
		{common.OutputFmtHtml, `<p>a <b>b</b></p>`},
		{common.OutputFmtTxt, "a b\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			out, err := Export(d, tt.format, rtf.DefaultOptions(), zaptest.NewLogger(t))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(out), tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out)
			}
		})
	}
	if _, err := Export(d, common.OutputFmt(99), rtf.DefaultOptions(), nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
