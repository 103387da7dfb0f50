// Package doctree defines the document tree consumed by the translator and
// loads it from docutils XML.
package doctree

import (
	"maps"
	"slices"
	"strings"
)

// IndexEntry is a single entry of an index node: (type, value, target id,
// main flag, key).
type IndexEntry struct {
	Type     string
	Value    string
	TargetID string
	Main     string
	Key      string
}

// Attrs holds node attributes. Fields are shared between kinds, each kind uses
// only what it needs, everything else lands in Extra.
type Attrs struct {
	IDs     []string
	Names   []string
	Classes []string

	// start_of_file, document
	DocName string

	// reference, pending_xref, target
	RefURI    string
	RefID     string
	RefTarget string
	RefDomain string
	RefType   string
	RefDoc    string

	// highlightlang, literal_block
	Language        string
	LinenoThreshold int
	Linenos         bool

	// image
	URI string
	// raw
	Format string

	// colspec, entry
	ColWidth int
	MoreCols int
	MoreRows int

	// index
	Entries []IndexEntry
	// toctree
	IncludeFiles []string

	Extra map[string]string
}

// Node is an element of the document tree. Children are owned by the node,
// Parent is a back reference used only for context lookups.
type Node struct {
	Kind     Kind
	Tag      string
	Text     string
	Attrs    Attrs
	Children []*Node
	Parent   *Node

	// Source and Line locate the node in its origin, when known.
	Source string
	Line   int
}

// New creates node of the requested kind and adopts children.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Tag: kind.String()}
	return n.Append(children...)
}

// NewTag creates node for an arbitrary tag, unknown tags produce KindUnknown
// nodes which keep their original tag.
func NewTag(tag string, children ...*Node) *Node {
	n := &Node{Kind: KindOf(tag), Tag: tag}
	return n.Append(children...)
}

// NewText creates text run.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Tag: KindText.String(), Text: text}
}

// Append adopts children and returns the node to allow chaining.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Index returns position of child in node's children or -1.
func (n *Node) Index(child *Node) int {
	return slices.Index(n.Children, child)
}

// Prev returns sibling immediately preceding the node, if any.
func (n *Node) Prev() *Node {
	if n.Parent == nil {
		return nil
	}
	if i := n.Parent.Index(n); i > 0 {
		return n.Parent.Children[i-1]
	}
	return nil
}

// AsText returns concatenated text of the subtree.
func (n *Node) AsText() string {
	if n.Kind == KindText {
		return n.Text
	}
	var b strings.Builder
	n.collectText(&b)
	return b.String()
}

func (n *Node) collectText(b *strings.Builder) {
	if n.Kind == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.collectText(b)
	}
}

// Walk calls fn for the node and its descendants in document order. When fn
// returns false descendants of the current node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// HasClass reports whether class is present in node's class list.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Attrs.Classes, class)
}

// Get returns value of an extensible attribute.
func (n *Node) Get(name string) (string, bool) {
	if n.Attrs.Extra == nil {
		return "", false
	}
	v, ok := n.Attrs.Extra[name]
	return v, ok
}

// Set stores extensible attribute value.
func (n *Node) Set(name, value string) *Node {
	if n.Attrs.Extra == nil {
		n.Attrs.Extra = make(map[string]string)
	}
	n.Attrs.Extra[name] = value
	return n
}

// FirstChild returns first child of the requested kind or nil.
func (n *Node) FirstChild(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Ancestor returns closest ancestor of one of the requested kinds or nil.
func (n *Node) Ancestor(kinds ...Kind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if slices.Contains(kinds, p.Kind) {
			return p
		}
	}
	return nil
}

// Clone returns deep copy of the subtree, the copy has no parent.
func (n *Node) Clone() *Node {
	cp := *n
	cp.Parent = nil
	cp.Attrs.IDs = slices.Clone(n.Attrs.IDs)
	cp.Attrs.Names = slices.Clone(n.Attrs.Names)
	cp.Attrs.Classes = slices.Clone(n.Attrs.Classes)
	cp.Attrs.Entries = slices.Clone(n.Attrs.Entries)
	cp.Attrs.IncludeFiles = slices.Clone(n.Attrs.IncludeFiles)
	cp.Attrs.Extra = maps.Clone(n.Attrs.Extra)
	cp.Children = nil
	for _, c := range n.Children {
		cp.Append(c.Clone())
	}
	return &cp
}

// Replace puts node in place of n within n's parent. Detached nodes are left
// alone and false is returned.
func (n *Node) Replace(with *Node) bool {
	if n.Parent == nil {
		return false
	}
	i := n.Parent.Index(n)
	if i < 0 {
		return false
	}
	with.Parent = n.Parent
	n.Parent.Children[i] = with
	n.Parent = nil
	return true
}
