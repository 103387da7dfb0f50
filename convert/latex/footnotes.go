package latex

import (
	"strings"

	"dtex/doctree"
)

type footnoteEntry struct {
	number  string
	node    *doctree.Node
	emitted bool
}

// footnotePool maps footnote number to its collected text.
type footnotePool map[string]*footnoteEntry

// collectFootnotes gathers footnotes of the subtree, nested file boundaries
// own their footnotes and are not entered.
func collectFootnotes(root *doctree.Node) footnotePool {
	pool := make(footnotePool)
	var collect func(n *doctree.Node)
	collect = func(n *doctree.Node) {
		if n.Kind == doctree.KindFootnote {
			num := footnoteNumber(n)
			pool[num] = &footnoteEntry{number: num, node: collectedFootnote(n, num)}
			return
		}
		for _, c := range n.Children {
			if c.Kind == doctree.KindStartOfFile {
				continue
			}
			collect(c)
		}
	}
	collect(root)
	return pool
}

func footnoteNumber(n *doctree.Node) string {
	if label := n.FirstChild(doctree.KindLabel); label != nil {
		return strings.TrimSpace(label.AsText())
	}
	if len(n.Children) > 0 {
		return strings.TrimSpace(n.Children[0].AsText())
	}
	return ""
}

// collectedFootnote borrows children of the footnote without re-parenting
// them, tree structure is never changed.
func collectedFootnote(fn *doctree.Node, num string) *doctree.Node {
	n := &doctree.Node{
		Kind:     doctree.KindCollectedFootnote,
		Tag:      doctree.KindCollectedFootnote.String(),
		Children: fn.Children,
		Parent:   fn.Parent,
		Source:   fn.Source,
		Line:     fn.Line,
	}
	n.Attrs.IDs = fn.Attrs.IDs
	n.Set("number", num)
	return n
}

// footnoteText returns variant of collected footnote rendered as
// \footnotetext after restriction has been lifted.
func footnoteText(collected *doctree.Node) *doctree.Node {
	cp := *collected
	cp.Attrs.Extra = nil
	num, _ := collected.Get("number")
	cp.Set("number", num).Set("footnotetext", "true")
	return &cp
}

func (t *Translator) footnotes() footnotePool {
	if len(t.pools) == 0 {
		return nil
	}
	return t.pools[len(t.pools)-1]
}

// restrict switches footnotes to deferred mode, only the outermost
// restricting node counts.
func (t *Translator) restrict(n *doctree.Node) {
	if t.restricted == nil {
		t.restricted = n
		t.pending = nil
	}
}

// unrestrict lifts restriction set by n and queues deferred footnote texts
// for replay right after n.
func (t *Translator) unrestrict(n *doctree.Node) {
	if t.restricted != n {
		return
	}
	t.restricted = nil
	for _, e := range t.pending {
		t.replay = append(t.replay, footnoteText(e.node))
	}
	t.pending = nil
}

func (t *Translator) visitFootnoteReference(n *doctree.Node, ctx *nodeContext) error {
	num := strings.TrimSpace(n.AsText())
	e, ok := t.footnotes()[num]
	if !ok {
		t.diagnose(n, "footnote ["+num+"] is not defined in this file")
		return errSkipNode
	}
	ctx.children = nil
	switch {
	case e.emitted:
		ctx.push(`\footnotemark[` + Mask(num) + `]`)
	case t.restricted != nil:
		e.emitted = true
		ctx.push(`\footnotemark[` + Mask(num) + `]`)
		t.pending = append(t.pending, e)
	default:
		e.emitted = true
		ctx.children = []*doctree.Node{e.node}
	}
	return nil
}

func (t *Translator) visitCollectedFootnote(n *doctree.Node, ctx *nodeContext) error {
	num, _ := n.Get("number")
	if _, text := n.Get("footnotetext"); text {
		ctx.push("%\n\\footnotetext[" + Mask(num) + "]{")
	} else {
		ctx.push("%\n\\footnote[" + Mask(num) + "]{")
	}
	ctx.close("}")
	return nil
}
