package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dtex/config"
	"dtex/convert"
	"dtex/state"
)

const sourceHelp = `
SOURCE:
    location of serialized document trees ("<docname>.xml", docutils XML), one of:
        path to a directory: "[path_to_directory]directory"
        path to archive: "[path_to_archive]archive.zip"
        path to archive with path inside archive: "[path_to_archive]archive.zip[path_in_archive]"

    Images referenced by documents are looked up relative to the same location.
`

// zipCodePageFlag is shared by every command reading sources.
func zipCodePageFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "force-zip-cp",
		Usage: "Force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)",
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:         "convert",
		Usage:        "Translates configured documents into XeLaTeX sources",
		ArgsUsage:    "SOURCE [DESTINATION]",
		OnUsageError: passUsageError,
		Action:       convert.Run,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "ignore directories in target names, put all outputs into DESTINATION"},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace existing output files"},
			&cli.BoolFlag{Name: "strict", Usage: "fail on any node translator does not know, ignoring optional list"},
			zipCodePageFlag(),
		},
		CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + `
DESTINATION:
    output directory, file names are derived from configured targets
    if absent - current working directory

Nothing is written unless every configured target was translated.
`,
	}
}

func dumpTreeCommand() *cli.Command {
	return &cli.Command{
		Name:         "dumptree",
		Usage:        "Prints document tree as translator sees it",
		ArgsUsage:    "SOURCE DOCNAME [DESTINATION]",
		OnUsageError: passUsageError,
		Action:       convert.DumpTree,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "assembled", Aliases: []string{"a"}, Usage: "inline toctrees and attach configured appendices"},
			zipCodePageFlag(),
		},
		CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + `
DOCNAME:
    document name without extension, for example "index" or "api/module"

DESTINATION:
    file name to write tree to, if absent - STDOUT
`,
	}
}

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:         "dumpconfig",
		Usage:        "Dumps either default or actual configuration (YAML)",
		ArgsUsage:    "DESTINATION",
		OnUsageError: passUsageError,
		Action:       dumpConfig,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Actual configuration is embedded defaults merged with configuration file.
Document entries are shown as written, inherited values are not filled in.
`,
	}
}

func dumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	kind, dump := "actual", func() ([]byte, error) { return config.Dump(env.Cfg) }
	if cmd.Bool("default") {
		kind, dump = "default", config.Prepare
	}
	data, err := dump()
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if fname == "" {
		env.Log.Info("Writing configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		_, err = os.Stdout.Write(data)
	} else {
		env.Log.Info("Writing configuration", zap.String("state", kind), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
