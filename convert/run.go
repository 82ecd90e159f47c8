package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	fixzip "github.com/hidez8891/zip"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"rtd/archive"
	"rtd/common"
	"rtd/content"
	"rtd/misc"
	"rtd/search"
	"rtd/state"
)

// handler receives every successfully prepared source. "src" is the path of
// the source relative to what was requested on the command line: base file
// name for a single file, relative path for files found in directories and
// archives.
type handler func(ctx context.Context, c *content.Content, src string) error

// Run converts sources into requested output format.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}
	dst, err := destinationArg(cmd, 1, log)
	if err != nil {
		return err
	}
	format := formatFlag(cmd, log)
	prepareEnv(cmd, env, log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, writeOutput(dst, format, nil, log), log)
}

// Replace substitutes every occurrence of the query in sources and writes
// results in requested output format.
func Replace(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("replace")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() < 3 {
		return errors.New("query and replacement must be specified")
	}
	query, replacement := cmd.Args().Get(1), cmd.Args().Get(2)
	if len(query) == 0 {
		log.Warn("Empty query, documents will be written unchanged")
	}
	dst, err := destinationArg(cmd, 3, log)
	if err != nil {
		return err
	}
	format := formatFlag(cmd, log)
	prepareEnv(cmd, env, log)

	total := 0
	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("query", query))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Int("replaced", total), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, writeOutput(dst, format, replaceAll(query, replacement, &total, log), log), log)
}

// Search prints every occurrence of the query found in sources.
func Search(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("search")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}
	query := cmd.Args().Get(1)
	if len(query) == 0 {
		return errors.New("no query has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	prepareEnv(cmd, env, log)

	total := 0
	defer func(start time.Time) {
		log.Info("Search completed", zap.Int("matches", total), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, printMatches(cmd.Root().Writer, query, &total), log)
}

func sourceArg(cmd *cli.Command) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", errors.New("no input source has been specified")
	}
	return filepath.Abs(src)
}

func destinationArg(cmd *cli.Command, pos int, log *zap.Logger) (dst string, err error) {
	dst = cmd.Args().Get(pos)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return "", err
	}
	if cmd.Args().Len() > pos+1 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[pos+1:]))
	}
	return dst, nil
}

func formatFlag(cmd *cli.Command, log *zap.Logger) common.OutputFmt {
	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to rtf", zap.Error(err))
		format = common.OutputFmtRtf
	}
	return format
}

func prepareEnv(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) {
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Zip does not define file name encoding and legacy text files carry no
	// charset at all, so user may force code page for both.
	cp := cmd.String("force-cp")
	if len(cp) == 0 {
		return
	}
	var err error
	env.CodePage, err = ianaindex.IANA.Encoding(cp)
	if err != nil || env.CodePage == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		env.CodePage = nil
		return
	}
	n, _ := ianaindex.IANA.Name(env.CodePage)
	log.Debug("Forcefully decoding non UTF-8 names and legacy text", zap.String("charset", n))
}

// process determines the input type (directory, archive, or single file) and
// feeds every source it finds to handler.
func process(ctx context.Context, src string, h handler, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, h, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", h, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if len(tail) != 0 {
			return fmt.Errorf("input was not recognized as archive (%s)", head)
		}
		// explicitly named file is always attempted, Prepare rejects what
		// it cannot handle
		file, err := os.Open(head)
		if err != nil {
			return fmt.Errorf("unable to open source: %w", err)
		}
		defer file.Close()
		if err := processFile(ctx, file, filepath.Base(head), h, log); err != nil {
			log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
		}
		break
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding documents and archives.
func processDir(ctx context.Context, dir string, h handler, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), h, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		format, err := isDocumentFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if format == common.InputFmtUnknown {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processFile(ctx, file, src, h, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processArchive walks all files inside archive, finds documents under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut string, h handler, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	walkPath := path
	if env.Cfg != nil && env.Cfg.Document.FixZip {
		tmp, err := os.CreateTemp("", misc.GetAppName()+"-*.zip")
		if err != nil {
			return fmt.Errorf("unable to create temporary file: %w", err)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		if err := archive.Repair(path, tmp.Name()); err != nil {
			return err
		}
		walkPath = tmp.Name()
	}

	return archive.Walk(walkPath, pathIn, func(_ string, f *fixzip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		format, err := isDocumentInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", path), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if format == common.InputFmtUnknown {
			log.Debug("Skipping file, not recognized as document", zap.String("archive", path), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", path), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.FileHeader.Name
		if cp := env.CodePage; cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := processFile(ctx, r, filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), h, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", path), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
}

// processFile prepares single source and hands it over. Malformed sources do
// not stop processing of others: panics are turned into errors.
func processFile(ctx context.Context, r io.Reader, src string, h handler, log *zap.Logger) (rerr error) {
	log.Debug("Source processing starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Source processing ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("from", src), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("processing panic: %v", r)
		}
	}(time.Now())

	c, err := content.Prepare(ctx, r, src, log)
	if err != nil {
		return fmt.Errorf("unable to prepare source (%s): %w", src, err)
	}
	if c.Rejected != nil {
		log.Warn("Parts of the source were not recognized and skipped", zap.String("file", src), zap.Error(c.Rejected))
	}
	return h(ctx, c, src)
}

// writeOutput stores every document in "dst" directory. Optional edit is
// applied to the document before it is written.
func writeOutput(dst string, format common.OutputFmt, edit func(*content.Content), log *zap.Logger) handler {
	return func(ctx context.Context, c *content.Content, src string) error {
		env := state.EnvFromContext(ctx)

		if edit != nil {
			edit(c)
		}

		outputName := buildOutputPath(c, src, dst, format, env)

		if _, err := os.Stat(outputName); err == nil {
			if !env.Overwrite {
				return fmt.Errorf("output file already exists: %s", outputName)
			}
			log.Warn("Overwriting existing file", zap.String("file", outputName))
			if err = os.Remove(outputName); err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return err
		} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}

		data, err := content.Export(c.Doc, format, env.CodecOptions(), log)
		if err != nil {
			return fmt.Errorf("unable to generate output: %w", err)
		}
		if err := os.WriteFile(outputName, data, 0644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		log.Info("Document written", zap.String("from", src), zap.String("to", outputName), zap.String("doc_id", c.Doc.ID))

		if env.Rpt != nil {
			env.Rpt.Store(fmt.Sprintf("result-%s%s", c.Doc.ID, format.Ext()), outputName)
		}
		return nil
	}
}

func replaceAll(query, replacement string, total *int, log *zap.Logger) func(*content.Content) {
	return func(c *content.Content) {
		var n int
		c.Doc, n = search.Replace(c.Doc, query, replacement)
		*total += n
		log.Debug("Replaced", zap.String("file", c.SrcName), zap.Int("count", n))
	}
}

// excerptLen limits context printed around a match, in runes.
const excerptLen = 24

func printMatches(w io.Writer, query string, total *int) handler {
	return func(_ context.Context, c *content.Content, src string) error {
		matches := search.Matches(search.Mark(c.Doc, query))
		for _, m := range matches {
			if _, err := fmt.Fprintf(w, "%s:%d: %s\n", src, m.Paragraph+1, excerpt(m)); err != nil {
				return err
			}
		}
		*total += len(matches)
		return nil
	}
}

// excerpt shows the match in brackets with some surrounding text of its run.
func excerpt(m search.Match) string {
	before, after := []rune(m.Node.Text[:m.Start]), []rune(m.Node.Text[m.End:])
	prefix, suffix := "", ""
	if len(before) > excerptLen {
		before, prefix = before[len(before)-excerptLen:], "..."
	}
	if len(after) > excerptLen {
		after, suffix = after[:excerptLen], "..."
	}
	s := prefix + string(before) + "[" + m.Text + "]" + string(after) + suffix
	return strings.Join(strings.Fields(s), " ")
}
