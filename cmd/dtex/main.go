package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"dtex/misc"
	"dtex/state"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "XeLaTeX writer for docutils/Sphinx document trees",
		Version:         fmt.Sprintf("%s (%s) : %s", misc.GetVersion(), runtime.Version(), misc.GetGitHash()),
		HideHelpCommand: true,
		Before:          beforeCommand,
		After:           afterCommand,
		OnUsageError:    passUsageError,
		ExitErrHandler:  logExitError,
		CommandNotFound: reportUnknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and pack configuration, logs, assembled trees and outputs into report archive"},
		},
		Commands: []*cli.Command{
			convertCommand(),
			dumpTreeCommand(),
			dumpConfigCommand(),
		},
	}
}

func main() {
	// targets are translated in parallel, interrupt cancels all of them
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err == nil {
		return
	}
	if !errLogged {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
	}
	os.Exit(1)
}
