package convert

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"dtex/config"
	"dtex/doctree"
)

// errCircular marks toctree entry referencing document being inlined.
var errCircular = errors.New("circular toctree reference")

// assembler produces single tree per output target. Parsed documents are
// cached, every use gets its own copy.
type assembler struct {
	src   Source
	log   *zap.Logger
	cache map[string]*doctree.Node
}

func newAssembler(src Source, log *zap.Logger) *assembler {
	return &assembler{src: src, log: log, cache: make(map[string]*doctree.Node)}
}

func (a *assembler) load(docname string) (*doctree.Node, error) {
	tree, ok := a.cache[docname]
	if !ok {
		var err error
		if tree, err = loadTree(a.src, docname, a.log); err != nil {
			return nil, err
		}
		a.cache[docname] = tree
	}
	return tree.Clone(), nil
}

// assemble builds tree for document: starting document with all toctrees
// replaced by content of included documents, followed by appendices.
func (a *assembler) assemble(doc config.DocumentConfig) (*doctree.Node, error) {
	tree, err := a.load(doc.DocName)
	if err != nil {
		return nil, err
	}
	if doc.ToctreeOnly {
		tree = toctreeOnly(tree, doc)
	}
	if err := a.inline(tree, []string{doc.DocName}); err != nil {
		return nil, err
	}
	for _, name := range doc.Appendices {
		app, err := a.load(name)
		if err != nil {
			return nil, fmt.Errorf("unable to load appendix: %w", err)
		}
		if err := a.inline(app, []string{doc.DocName, name}); err != nil {
			return nil, err
		}
		tree.Append(app)
	}
	return tree, nil
}

// inline replaces every toctree of the tree with included documents, each
// wrapped into start_of_file node. Chain holds names of documents being
// inlined to catch cycles.
func (a *assembler) inline(tree *doctree.Node, chain []string) error {
	var toctrees []*doctree.Node
	tree.Walk(func(n *doctree.Node) bool {
		if n.Kind == doctree.KindToctree {
			toctrees = append(toctrees, n)
			return false
		}
		return true
	})

	for _, tt := range toctrees {
		wrapper := doctree.New(doctree.KindCompound)
		wrapper.Attrs.Classes = []string{"toctree-wrapper"}
		for _, name := range tt.Attrs.IncludeFiles {
			if slices.Contains(chain, name) {
				a.log.Warn("Skipping toctree entry", zap.String("from", chain[len(chain)-1]),
					zap.String("docname", name), zap.Error(errCircular))
				continue
			}
			sub, err := a.load(name)
			if err != nil {
				a.log.Warn("Toctree contains reference to missing document",
					zap.String("from", chain[len(chain)-1]), zap.String("docname", name), zap.Error(err))
				continue
			}
			if err := a.inline(sub, append(slices.Clip(chain), name)); err != nil {
				return err
			}
			sof := doctree.New(doctree.KindStartOfFile, sub.Children...)
			sof.Attrs.DocName = name
			sof.Source, sof.Line = sub.Source, sub.Line
			wrapper.Append(sof)
		}
		tt.Replace(wrapper)
	}
	return nil
}

// toctreeOnly keeps only toctrees of the starting document under a section
// titled after the document.
func toctreeOnly(tree *doctree.Node, doc config.DocumentConfig) *doctree.Node {
	title := doc.Title
	if title == "" {
		if t := firstTitle(tree); t != nil {
			title = t.AsText()
		} else {
			title = doc.DocName
		}
	}
	section := doctree.New(doctree.KindSection, doctree.New(doctree.KindTitle, doctree.NewText(title)))
	tree.Walk(func(n *doctree.Node) bool {
		if n.Kind == doctree.KindToctree {
			section.Append(n.Clone())
			return false
		}
		return true
	})

	root := doctree.New(doctree.KindDocument, section)
	root.Attrs = tree.Attrs
	root.Attrs.DocName = doc.DocName
	root.Source = tree.Source
	return root
}

func firstTitle(tree *doctree.Node) *doctree.Node {
	var title *doctree.Node
	tree.Walk(func(n *doctree.Node) bool {
		if title != nil {
			return false
		}
		if n.Kind == doctree.KindTitle {
			title = n
			return false
		}
		return true
	})
	return title
}
