// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"rtd/config"
	"rtd/doc"
	"rtd/rtf"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by convert and replace subcommands
	NoDirs    bool
	Overwrite bool
	CodePage  encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

// ContextWithEnv attaches fresh environment to context, uptime is counted
// from this moment.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Defaults returns document defaults derived from configuration. Without
// configuration built-in defaults are used.
func (e *LocalEnv) Defaults() doc.Defaults {
	if e.Cfg == nil {
		return doc.DefaultDefaults()
	}
	return doc.Defaults{
		Font: e.Cfg.Document.DefaultFont,
		Size: doc.LegacyToHalfPoints(e.Cfg.Document.DefaultSize),
	}
}

// CodecOptions returns markup encoder settings from configuration.
func (e *LocalEnv) CodecOptions() rtf.Options {
	if e.Cfg == nil {
		return rtf.DefaultOptions()
	}
	return rtf.Options{
		CodePage:    e.Cfg.Codec.CodePage,
		EscapeAbove: e.Cfg.Codec.EscapeAbove,
	}
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
