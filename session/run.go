package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rtd/state"
	"rtd/workspace"
)

func storePath(cmd *cli.Command, env *state.LocalEnv) string {
	if p := cmd.String("store"); p != "" {
		return p
	}
	if env.Cfg != nil {
		return env.Cfg.Session.StorePath
	}
	return ""
}

// Run replays script against workspace. With store configured workspace is
// loaded before and saved after successful run.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("session")

	name := cmd.Args().Get(0)
	if len(name) == 0 {
		return errors.New("no session script has been specified")
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("unable to read session script: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(filepath.Base(name), data)
	}
	script, err := LoadScript(bytes.NewReader(data))
	if err != nil {
		return err
	}

	ws := workspace.New(env.Defaults(), log)
	var store *workspace.Store
	if path := storePath(cmd, env); path != "" {
		if store, err = workspace.Open(path, env.CodecOptions(), log); err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, store.Close())
		}()
		if ws, err = store.Load(env.Defaults(), log); err != nil {
			return err
		}
	}

	log.Info("Session starting", zap.String("script", name), zap.Int("steps", len(script.Steps)), zap.Int("tabs", ws.Len()))
	defer func(start time.Time) {
		log.Info("Session completed", zap.Duration("elapsed", time.Since(start)), zap.Int("tabs", ws.Len()))
	}(time.Now())

	if err := NewRunner(ws, store, env.CodecOptions(), cmd.Root().Writer, log).Run(ctx, script); err != nil {
		return err
	}
	if store != nil {
		return store.Save(ws)
	}
	return nil
}

// List prints tabs kept in workspace store.
func List(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("session")

	path := storePath(cmd, env)
	if path == "" {
		return ErrNoStore
	}
	store, err := workspace.Open(path, env.CodecOptions(), log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()

	ws, err := store.Load(env.Defaults(), log)
	if err != nil {
		return err
	}
	return printTabs(cmd.Root().Writer, ws)
}

func printTabs(w io.Writer, ws *workspace.Workspace) error {
	for _, t := range ws.Tabs() {
		mark := " "
		if t == ws.Current() {
			mark = "*"
		}
		last := "-"
		if l := t.Tracker().Snapshot(); l != nil {
			last = fmt.Sprintf("%s/%d", l.FontName, l.FontSize)
			if l.Bold {
				last += "/bold"
			}
		}
		if _, err := fmt.Fprintf(w, "%s %s\t%q\t%d\t%s\n", mark, t.ID, t.Title, t.Surface().Len(), last); err != nil {
			return err
		}
	}
	return nil
}
