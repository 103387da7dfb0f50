package doctree

import (
	"sort"

	"github.com/maruel/natural"

	"dtex/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable dump of the subtree. It exists solely for manual
// inspection during debugging.
func (n *Node) String() string {
	if n == nil {
		return "<nil Node>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.node(0, n)
	return tw.TreeWriter.String()
}

func (tw treeWriter) node(depth int, n *Node) {
	if n.Kind == KindText {
		tw.TextBlock(depth, "#text", n.Text)
		return
	}

	name := n.Tag
	if n.Kind == KindUnknown {
		name += " (unknown)"
	}
	a := &n.Attrs
	attrs := []debug.Attr{
		{Name: "ids", List: a.IDs},
		{Name: "names", List: a.Names},
		{Name: "classes", List: a.Classes},
		{Name: "docname", Value: a.DocName},
		{Name: "refuri", Value: a.RefURI},
		{Name: "refid", Value: a.RefID},
		{Name: "reftarget", Value: a.RefTarget},
		{Name: "reftype", Value: a.RefType},
		{Name: "language", Value: a.Language},
		{Name: "uri", Value: a.URI},
		{Name: "format", Value: a.Format},
		{Name: "includefiles", List: a.IncludeFiles},
	}
	if len(a.Extra) > 0 {
		keys := make([]string, 0, len(a.Extra))
		for k := range a.Extra {
			keys = append(keys, k)
		}
		sort.Sort(natural.StringSlice(keys))
		for _, k := range keys {
			attrs = append(attrs, debug.Attr{Name: k, Value: a.Extra[k]})
		}
	}
	tw.Element(depth, name, attrs...)

	for _, e := range a.Entries {
		tw.Line(depth+1, "entry type=%q value=%q target=%q", e.Type, e.Value, e.TargetID)
	}
	for _, c := range n.Children {
		tw.node(depth+1, c)
	}
}
