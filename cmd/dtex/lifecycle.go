package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dtex/config"
	"dtex/misc"
	"dtex/state"
)

// beforeCommand loads configuration, opens debug report and sets up logging.
// Report has to exist before logger so log file ends up in it.
func beforeCommand(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	configFile := cmd.String("config")

	cfg, err := config.LoadConfiguration(configFile)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	env.Cfg = cfg

	if cmd.Bool("debug") {
		if env.Rpt, err = cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if data, err := config.Dump(cfg); err == nil {
			name := "config/default.yaml"
			if configFile != "" {
				name = "config/" + filepath.Base(configFile)
			}
			env.Rpt.StoreData(name, data)
		}
	}

	if env.Log, err = cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Stringer("run", env.RunID),
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("hash", misc.GetGitHash()),
		zap.String("runtime", runtime.Version()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if configFile == "" {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// afterCommand flushes logs and closes report. Logger is gone after this,
// problems are returned to be printed on stderr.
func afterCommand(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Stringer("run", env.RunID), zap.Duration("elapsed", env.Uptime()))
	}
	env.RestoreStdLog()

	var err error
	if er := env.Rpt.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
	}
	if env.Cfg != nil {
		err = multierr.Append(err, removeEmptyPanicLog(env.Cfg.Logging.FileLogger.Destination))
	}
	return err
}

// removeEmptyPanicLog cleans after capturePanics when nothing crashed.
func removeEmptyPanicLog(logDestination string) error {
	if logDestination == "" {
		return nil
	}
	_ = debug.SetCrashOutput(nil, debug.CrashOptions{})

	fname := filepath.Join(filepath.Dir(logDestination), misc.GetAppName()+"-panic.log")
	fi, err := os.Stat(fname)
	if err != nil || fi.Size() > 0 {
		return nil
	}
	if err := os.Remove(fname); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, err)
	}
	return nil
}

// errLogged is set when the final error already went to the log, so main
// does not print it again.
var errLogged bool

func logExitError(ctx context.Context, _ *cli.Command, err error) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Error("Program ended with error", zap.Error(err))
		errLogged = true
	}
}

func passUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func reportUnknownCommand(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}
