// Package convert drives translation: finds document trees, assembles them
// per output target, translates targets in parallel and writes results.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"dtex/config"
	"dtex/convert/latex"
	"dtex/state"
)

// ErrNoTargets is returned when configuration has no documents to build.
var ErrNoTargets = errors.New("no XeLaTeX targets to build")

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite, env.Strict = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("strict")

	env.CodePage = forcedCodePage(cmd, log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("run", env.RunID))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// forcedCodePage returns encoding requested for non UTF-8 names in archives.
// Since zip "standard" does not define file name encoding we may need to
// force archaic code page for old archives.
func forcedCodePage(cmd *cli.Command, log *zap.Logger) encoding.Encoding {
	cp := cmd.String("force-zip-cp")
	if len(cp) == 0 {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	return enc
}

// target is a single output document in flight.
type target struct {
	doc         config.DocumentConfig
	res         *latex.Result
	diagnostics []latex.Diagnostic
}

// process handles the core conversion logic independently of CLI framework.
// Outputs are written only when every target was translated.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	if len(env.Cfg.Documents) == 0 {
		log.Warn("Nothing to do", zap.Error(ErrNoTargets))
		return nil
	}
	if err := checkAdditionalFiles(env.Cfg.Project.AdditionalFiles); err != nil {
		return err
	}

	source, err := openSource(ctx, src, env.CodePage, log)
	if err != nil {
		return err
	}
	log.Debug("Source opened", zap.Stringer("source", source))

	var reg latex.IndexRegistry
	if path := env.Cfg.Project.IndexRegistry; path != "" {
		r, err := loadIndexRegistry(path)
		if err != nil {
			return err
		}
		reg = r
	}

	targets, err := translateAll(ctx, source, reg, log)
	if err != nil {
		return err
	}
	return writeTargets(targets, dst, env, log)
}

// translateAll translates every configured document, each in its own
// goroutine with its own translator. Failure of one document does not stop
// others, all failures are returned together.
func translateAll(ctx context.Context, src Source, reg latex.IndexRegistry, log *zap.Logger) ([]*target, error) {
	env := state.EnvFromContext(ctx)

	targets := make([]*target, len(env.Cfg.Documents))
	var (
		mu   sync.Mutex
		errs error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(env.Workers())
	for i, d := range env.Cfg.Documents {
		doc := env.Cfg.Resolve(d)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := translateTarget(gctx, src, doc, reg, log)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", doc.Target, err))
				mu.Unlock()
				return nil
			}
			targets[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// diagnostics are reported in configuration order, never interleaved
	for _, t := range targets {
		if t == nil {
			continue
		}
		for _, d := range t.diagnostics {
			log.Warn("Translation problem", zap.String("target", t.doc.Target), zap.Stringer("at", d))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return targets, nil
}

// translateTarget assembles and translates single output document.
func translateTarget(ctx context.Context, src Source, doc config.DocumentConfig, reg latex.IndexRegistry, log *zap.Logger) (t *target, rerr error) {
	env := state.EnvFromContext(ctx)

	tlog := log.With(zap.String("target", doc.Target))
	tlog.Info("Translation starting", zap.String("docname", doc.DocName))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			tlog.Error("Translation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("translation panic: %v", r)
		} else if rerr == nil {
			tlog.Info("Translation completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	if err := checkLogo(doc.Logo); err != nil {
		return nil, err
	}
	tmpls, err := latex.LoadTemplates(doc.Templates.Header, doc.Templates.BeginDoc, doc.Templates.Footer)
	if err != nil {
		return nil, err
	}

	tree, err := newAssembler(src, tlog).assemble(doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env.Rpt.StoreText(fmt.Sprintf("trees/%s.txt", doc.Target), tree.String())

	res, err := latex.Translate(tree, latex.Options{
		Document:          doc,
		Language:          env.Cfg.Project.Language,
		HighlightLanguage: env.Cfg.Project.HighlightLanguage,
		PygmentsStyle:     env.Cfg.Project.PygmentsStyle,
		Strict:            env.StrictTranslation(),
		Optional:          env.Cfg.Translator.Optional,
		Resolver:          latex.NewTreeResolver(tree),
		Indices:           reg,
		Templates:         &tmpls,
	}, log)
	if err != nil {
		return nil, err
	}

	t = &target{doc: doc, res: res, diagnostics: res.Diagnostics}
	t.diagnostics = append(t.diagnostics, checkImages(src, res, doc.DocName)...)
	return t, nil
}

// writeTargets stores translated documents under dst. All output names are
// checked before anything is written.
func writeTargets(targets []*target, dst string, env *state.LocalEnv, log *zap.Logger) error {
	names := make([]string, len(targets))
	owners := make(map[string]string, len(targets))
	for i, t := range targets {
		values := buildValues(config.OutputNameTemplateFieldName, t.doc, t.res.Info, env)
		outputName := buildOutputPath(values, t.doc.Target, dst, env)
		if prev, ok := owners[outputName]; ok {
			return fmt.Errorf("targets %s and %s produce the same output: %s", prev, t.doc.Target, outputName)
		}
		owners[outputName] = t.doc.Target

		// Check if output file already exists
		if _, err := os.Stat(outputName); err == nil {
			if !env.Overwrite {
				return fmt.Errorf("output file already exists: %s", outputName)
			}
		} else if !os.IsNotExist(err) {
			return err
		}
		names[i] = outputName
	}

	for i, t := range targets {
		outputName := names[i]
		if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
		if _, err := os.Stat(outputName); err == nil {
			log.Warn("Overwriting existing file", zap.String("file", outputName))
		}
		if err := os.WriteFile(outputName, []byte(t.res.Text), 0644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		log.Info("Output written", zap.String("target", t.doc.Target), zap.String("to", outputName),
			zap.Int("images", len(t.res.Images)))

		// Store conversion result for debugging
		env.Rpt.Store(fmt.Sprintf("result-%s", filepath.Base(outputName)), outputName)
	}
	return nil
}
