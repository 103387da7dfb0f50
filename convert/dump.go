package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"

	"dtex/config"
	"dtex/state"
)

// DumpTree prints document tree the way translator sees it. With --assembled
// toctrees are inlined and appendices of matching configured target are
// attached.
func DumpTree(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dumptree")

	src, docname := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(src) == 0 || len(docname) == 0 {
		return errors.New("source and document name must be specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	env.CodePage = forcedCodePage(cmd, log)
	source, err := openSource(ctx, src, env.CodePage, log)
	if err != nil {
		return err
	}

	a := newAssembler(source, log)
	var text string
	if cmd.Bool("assembled") {
		doc := config.DocumentConfig{DocName: docname}
		for _, d := range env.Cfg.Documents {
			if d.DocName == docname {
				doc = env.Cfg.Resolve(d)
				break
			}
		}
		tree, err := a.assemble(doc)
		if err != nil {
			return err
		}
		text = tree.String()
	} else {
		tree, err := a.load(docname)
		if err != nil {
			return err
		}
		text = tree.String()
	}

	fname := cmd.Args().Get(2)
	if len(fname) == 0 {
		_, err = os.Stdout.WriteString(text)
		return err
	}
	if err := os.WriteFile(fname, []byte(text), 0644); err != nil {
		return fmt.Errorf("unable to write tree dump: %w", err)
	}
	return nil
}
