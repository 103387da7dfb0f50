// Package state defines program state shared by all subcommands.
package state

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"dtex/config"
)

type envKey struct{}

// LocalEnv is created once per invocation and travels in context.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// RunID tags every log line and report of a single invocation.
	RunID uuid.UUID

	// command line overrides
	NoDirs    bool
	Overwrite bool
	Strict    bool
	CodePage  encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now(), RunID: uuid.New()})
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	panic("localenv not found in context")
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog sends output of standard "log" package (used by some
// libraries) to our logger.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log != nil {
		e.restoreStdLog = zap.RedirectStdLog(e.Log)
	}
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}

// StrictTranslation reports whether unknown node kinds must fail translation,
// command line flag wins over configuration.
func (e *LocalEnv) StrictTranslation() bool {
	return e.Strict || e.Cfg != nil && e.Cfg.Translator.Strict
}

// Workers is the number of targets translated at the same time.
func (e *LocalEnv) Workers() int {
	if e.Cfg != nil && e.Cfg.Project.Workers > 0 {
		return e.Cfg.Project.Workers
	}
	return runtime.NumCPU()
}
