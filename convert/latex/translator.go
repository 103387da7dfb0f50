// Package latex translates document trees into XeLaTeX.
package latex

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"

	"dtex/config"
	"dtex/doctree"
	"dtex/misc"
)

// Options carries everything translator needs besides the tree.
type Options struct {
	// Document must be already resolved against project defaults.
	Document          config.DocumentConfig
	Language          string
	HighlightLanguage string
	PygmentsStyle     string
	Strict            bool
	Optional          []string
	Resolver          Resolver
	Indices           IndexRegistry
	Templates         *Templates
}

type docState int

const (
	docFirst docState = iota
	docSubsequent
	docAppended
)

type hlSetting struct {
	lang      string
	threshold int
}

// Translator is single use, it keeps all state of one document translation.
type Translator struct {
	opts Options
	log  *zap.Logger

	stacks contextStacks
	out    strings.Builder

	elements     map[string]string
	requirements sortedDict
	fallbacks    sortedDict
	info         PDFInfo
	images       map[string]string
	diagnostics  []Diagnostic

	dclass      *documentClass
	poly        *polyglossia
	highlighter *highlighter
	templates   Templates

	docs      docState
	docDepth  int
	titleSeen bool
	inTitle   int

	curFiles []string
	hlStack  []hlSetting

	pools      []footnotePool
	restricted *doctree.Node
	pending    []*footnoteEntry
	replay     []*doctree.Node

	bib    []bibItem
	tables []*tableState
}

// New creates translator for a single document.
func New(opts Options, log *zap.Logger) *Translator {
	t := &Translator{
		opts:         opts,
		log:          log.Named("latex").With(zap.String("target", opts.Document.Target)),
		requirements: sortedDict{reqStatic: requirementTexts[reqStatic]},
		fallbacks:    sortedDict{},
		images:       make(map[string]string),
		dclass:       newDocumentClass(opts.Document.ToplevelSectioning),
		highlighter:  newHighlighter(opts.PygmentsStyle),
		templates:    DefaultTemplates(),
		hlStack:      []hlSetting{{lang: opts.HighlightLanguage, threshold: math.MaxInt}},
	}
	if opts.Templates != nil {
		t.templates = *opts.Templates
	}
	var ok bool
	if t.poly, ok = newPolyglossia(opts.Language); !ok {
		t.diagnose(nil, fmt.Sprintf("language %q is not supported by polyglossia, using english", opts.Language))
	}
	t.elements = t.defaultElements()
	return t
}

func (t *Translator) defaultElements() map[string]string {
	d := t.opts.Document
	el := map[string]string{
		"generator":       misc.GetAppName() + " " + misc.GetVersion(),
		"docclass":        d.DocClass,
		"papersize":       d.PaperSize,
		"pointsize":       d.FontSize,
		"classoptions":    "",
		"preamble":        d.Preamble,
		"title":           attval(d.Title),
		"date":            attval(d.Date),
		"release":         attval(d.Release),
		"author":          attval(d.Author),
		"logo":            "",
		"releasename":     attval(d.ReleaseName),
		"indexname":       attval(d.IndexName),
		"makeindex":       `\makeindex`,
		"maketitle":       `\maketitle`,
		"tableofcontents": `\tableofcontents`,
		"printindex":      `\printindex`,
		"footer":          "",
		"tocdepth":        "",
	}
	if el["papersize"] == "" {
		el["papersize"] = "letterpaper"
	}
	if el["pointsize"] == "" {
		el["pointsize"] = "12pt"
	}
	if el["docclass"] == "" {
		el["docclass"] = "report"
	}
	if el["releasename"] == "" {
		el["releasename"] = "Release"
	}
	if el["indexname"] == "" {
		el["indexname"] = "Index"
	}
	if len(d.ClassOptions) > 0 {
		el["classoptions"] = "," + strings.Join(d.ClassOptions, ",")
	}
	if !d.MakeIndex {
		el["makeindex"], el["printindex"] = "", ""
	}
	if d.TOCDepth > 0 {
		el["tocdepth"] = fmt.Sprintf(`\setcounter{tocdepth}{%d}`, d.TOCDepth)
	}
	if d.Logo != "" {
		el["logo"] = `\includegraphics{` + baseName(d.Logo) + `}`
		t.require(reqGraphicx)
	}
	if d.Author != "" {
		t.info.Authors = append(t.info.Authors, attval(d.Author))
	}
	return el
}

// Translate renders tree into complete XeLaTeX text.
func (t *Translator) Translate(tree *doctree.Node) (*Result, error) {
	if tree == nil {
		return nil, errors.New("nothing to translate")
	}
	if err := t.walk(tree); err != nil {
		return nil, err
	}
	if err := t.stacks.check(); err != nil {
		return nil, err
	}
	if t.dclass.entered != t.dclass.left || t.dclass.level() != 0 {
		return nil, fmt.Errorf("sections entered %d, left %d: %w", t.dclass.entered, t.dclass.left, ErrContextImbalance)
	}
	return t.result()
}

// Translate is a shortcut for New(opts, log).Translate(tree).
func Translate(tree *doctree.Node, opts Options, log *zap.Logger) (*Result, error) {
	return New(opts, log).Translate(tree)
}

// walk visits node and its subtree. Every entered context is left exactly
// once unless a fatal error aborts translation.
func (t *Translator) walk(n *doctree.Node) error {
	ctx := t.stacks.enter(n)
	ctx.children = n.Children

	err := t.visit(n, ctx)
	skip := errors.Is(err, errSkipNode)
	if err != nil && !skip {
		return t.fatal(n, err)
	}
	if !skip {
		for _, c := range ctx.children {
			if err := t.walk(c); err != nil {
				return err
			}
		}
		if err := t.depart(n, ctx); err != nil {
			return t.fatal(n, err)
		}
	}
	if _, err := t.stacks.leave(n.Kind); err != nil {
		return t.fatal(n, err)
	}
	return t.drainReplay()
}

// drainReplay renders footnote texts deferred by a lifted restriction.
func (t *Translator) drainReplay() error {
	for len(t.replay) > 0 && t.restricted == nil {
		n := t.replay[0]
		t.replay = t.replay[1:]
		if err := t.walk(n); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) fatal(n *doctree.Node, err error) error {
	var fe *FatalError
	if errors.As(err, &fe) {
		return err
	}
	return &FatalError{DocName: t.curFile(), Source: n.Source, Line: n.Line, Tag: n.Tag, Err: err}
}

// flush is the default departure: body and end tags go to the enclosing
// context.
func (t *Translator) flush(ctx *nodeContext) {
	text := ctx.String()
	switch {
	case ctx.capture != nil:
		ctx.capture(text)
	case ctx.parent != nil:
		ctx.parent.body = append(ctx.parent.body, text)
	default:
		t.out.WriteString(text)
	}
}

func (t *Translator) diagnose(n *doctree.Node, msg string) {
	d := Diagnostic{DocName: t.curFile(), Message: msg}
	if n != nil {
		d.Source, d.Line = n.Source, n.Line
	}
	t.diagnostics = append(t.diagnostics, d)
	t.log.Debug("Translation problem", zap.Stringer("diagnostic", d))
}

func (t *Translator) curFile() string {
	if len(t.curFiles) == 0 {
		return t.opts.Document.DocName
	}
	return t.curFiles[len(t.curFiles)-1]
}

// hypertarget returns label for id qualified by current file.
func (t *Translator) hypertarget(id string) string {
	return hypertarget(t.curFile()+":"+id, true)
}

func hypertarget(id string, anchor bool) string {
	label := `\label{` + MaskID(id) + `}`
	if anchor {
		return `\phantomsection` + label
	}
	return label
}

// idsToLabels returns labels for all ids of the node.
func (t *Translator) idsToLabels(n *doctree.Node, anchor bool) string {
	if len(n.Attrs.IDs) == 0 {
		return ""
	}
	var b strings.Builder
	if anchor {
		b.WriteString(`\phantomsection`)
	}
	for _, id := range n.Attrs.IDs {
		b.WriteString(hypertarget(t.curFile()+":"+id, false))
	}
	return b.String()
}

func (t *Translator) optional(tag string) bool {
	return !t.opts.Strict && slices.Contains(t.opts.Optional, tag)
}
