package latex

import (
	"errors"
	"strings"

	"dtex/doctree"
)

// ErrNoURI means reference target cannot be resolved within the output.
var ErrNoURI = errors.New("no uri for target")

// Resolver maps cross-reference targets to URIs understood by the reference
// handler: "%docname" for documents and "%docname#id" for labels.
type Resolver interface {
	Resolve(fromDoc string, xref *doctree.Node) (string, error)
}

type label struct {
	doc string
	id  string
}

// TreeResolver resolves references against assembled document tree: every
// document boundary is a valid target, every named node is a valid label.
type TreeResolver struct {
	docs   map[string]bool
	labels map[string]label
}

// NewTreeResolver indexes documents and labels of the tree.
func NewTreeResolver(tree *doctree.Node) *TreeResolver {
	r := &TreeResolver{docs: make(map[string]bool), labels: make(map[string]label)}
	r.index(tree, tree.Attrs.DocName)
	return r
}

func (r *TreeResolver) index(n *doctree.Node, doc string) {
	if (n.Kind == doctree.KindStartOfFile || n.Kind == doctree.KindDocument) && n.Attrs.DocName != "" {
		doc = n.Attrs.DocName
		r.docs[doc] = true
	}
	if len(n.Attrs.IDs) > 0 {
		id := n.Attrs.IDs[0]
		for _, name := range n.Attrs.Names {
			key := strings.ToLower(name)
			if _, ok := r.labels[key]; !ok {
				r.labels[key] = label{doc: doc, id: id}
			}
		}
		for _, id := range n.Attrs.IDs {
			if _, ok := r.labels[id]; !ok {
				r.labels[id] = label{doc: doc, id: id}
			}
		}
	}
	for _, c := range n.Children {
		r.index(c, doc)
	}
}

// Known reports whether document is part of the output.
func (r *TreeResolver) Known(doc string) bool {
	return r.docs[doc]
}

func (r *TreeResolver) Resolve(fromDoc string, xref *doctree.Node) (string, error) {
	target := xref.Attrs.RefTarget
	if target == "" {
		return "", ErrNoURI
	}
	if xref.Attrs.RefType == "doc" {
		doc := resolveDocName(fromDoc, target)
		if !r.docs[doc] {
			return "", ErrNoURI
		}
		return "%" + doc, nil
	}
	if l, ok := r.labels[strings.ToLower(target)]; ok {
		return "%" + l.doc + "#" + l.id, nil
	}
	if l, ok := r.labels[target]; ok {
		return "%" + l.doc + "#" + l.id, nil
	}
	return "", ErrNoURI
}

// resolveDocName turns relative document reference into absolute docname.
func resolveDocName(fromDoc, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := ""
	if i := strings.LastIndex(fromDoc, "/"); i >= 0 {
		dir = fromDoc[:i+1]
	}
	parts := []string{}
	for _, p := range strings.Split(dir+target, "/") {
		switch p {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}
