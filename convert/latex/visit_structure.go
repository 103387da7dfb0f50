package latex

import (
	"strings"

	"dtex/doctree"
)

func (t *Translator) enterFile(n *doctree.Node) {
	t.pools = append(t.pools, collectFootnotes(n))
	t.curFiles = append(t.curFiles, n.Attrs.DocName)
	t.hlStack = append(t.hlStack, t.hlStack[0])
}

func (t *Translator) leaveFile() {
	t.hlStack = t.hlStack[:len(t.hlStack)-1]
	t.curFiles = t.curFiles[:len(t.curFiles)-1]
	t.pools = t.pools[:len(t.pools)-1]
}

func (t *Translator) visitStartOfFile(n *doctree.Node, ctx *nodeContext) error {
	t.enterFile(n)
	ctx.push(t.hypertarget(":doc"))
	return nil
}

// visitDocument handles master document and appendices nested in it. Only
// the very first document opens the body, first appendix emits \appendix.
func (t *Translator) visitDocument(n *doctree.Node, ctx *nodeContext) error {
	t.enterFile(n)
	t.docDepth++

	switch t.docs {
	case docFirst:
		begin, err := renderTemplate("begin_doc", t.templates.BeginDoc, t.elements)
		if err != nil {
			return err
		}
		ctx.push(begin)
		t.docs = docSubsequent
	case docSubsequent:
		ctx.push("\n\\appendix\n")
		t.docs = docAppended
	}

	if n.Attrs.DocName != "" {
		ctx.push(t.hypertarget(":doc"))
	}
	return nil
}

func (t *Translator) departDocument(_ *doctree.Node, ctx *nodeContext) error {
	t.docDepth--
	if t.docDepth == 0 && len(t.bib) > 0 {
		ctx.push(renderBibliography(t.bib))
		t.bib = nil
	}
	t.flush(ctx)
	t.leaveFile()
	return nil
}

func (t *Translator) visitTitle(n *doctree.Node, ctx *nodeContext) error {
	parent := n.Parent
	if parent == nil {
		t.diagnose(n, "encountered title node without parent")
		t.fallback(fbTitle)
		ctx.push(`\DUtitle[title]{`)
		ctx.close("}\n")
		t.inTitle++
		return nil
	}

	switch parent.Kind {
	case doctree.KindSeeAlso:
		// the environment already handles this
		return errSkipNode

	case doctree.KindDocument:
		if !t.titleSeen {
			t.setTitle(n)
		}
		return errSkipNode

	case doctree.KindTopic, doctree.KindAdmonition, doctree.KindSidebar:
		t.fallback(fbTitle)
		classes := strings.Join(parent.Attrs.Classes, ",")
		if parent.Kind == doctree.KindAdmonition {
			classes = strings.Join(admonitionClasses(parent), ",")
		}
		if classes == "" {
			classes = n.Tag
		}
		ctx.push(`\DUtitle[` + classes + `]{`)
		ctx.close("}\n")

	case doctree.KindTable:
		t.restrict(n)
		if ts := t.activeTable(); ts != nil {
			ctx.capture = func(text string) {
				ts.caption = text
			}
		}

	case doctree.KindSection:
		if !t.titleSeen {
			t.setTitle(n)
		}
		t.restrict(n)
		name, ok := t.dclass.sectionName()
		if !ok {
			t.fallback(fbTitle)
			t.diagnose(n, "section nested too deep, using "+name)
		}
		ctx.push("\n\n")
		if parent.HasClass("system-messages") {
			// system messages heading in red
			t.require(reqColor)
			ctx.push(`\` + name + `[` + attval(n.AsText()) + `]{\color{red}`)
		} else {
			ctx.push(`\` + name + `{`)
		}
		if labels := t.idsToLabels(parent, false); labels != "" {
			ctx.close(labels + "\n")
		} else {
			ctx.close("\n")
		}
		ctx.close(`}`)

	default:
		t.diagnose(n, "encountered title node not in section, topic, table, admonition or sidebar")
		t.fallback(fbTitle)
		ctx.push(`\DUtitle[title]{`)
		ctx.close("}\n")
	}
	t.inTitle++
	return nil
}

// setTitle records the first document title into metadata. Configured title
// wins.
func (t *Translator) setTitle(n *doctree.Node) {
	t.titleSeen = true
	if len(n.Children) != 1 || n.Children[0].Kind != doctree.KindText {
		t.diagnose(n, "document title is not a single Text node")
	}
	if t.elements["title"] == "" {
		t.elements["title"] = attval(n.AsText())
	}
	t.info.Title = t.elements["title"]
}

func (t *Translator) visitSubtitle(n *doctree.Node, ctx *nodeContext) error {
	if n.Parent != nil && n.Parent.Kind == doctree.KindDocument {
		t.elements["subtitle"] = attval(n.AsText())
		return errSkipNode
	}
	t.fallback(fbTitle)
	ctx.push(`\DUtitle[subtitle]{`)
	ctx.close("}\n")
	return nil
}

// tightSiblings never need separation from the following paragraph.
var tightSiblings = []doctree.Kind{
	doctree.KindTitle, doctree.KindSubtitle, doctree.KindTarget, doctree.KindLabel, doctree.KindComment,
}

// paragraphSeparated reports whether paragraph needs leading blank line. It
// does not when it starts a list item, definition or table cell, follows a
// non-paragraph inside a compound, or only titles and markers precede it.
func paragraphSeparated(n *doctree.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}
	index := parent.Index(n)
	if index < 0 {
		return true
	}
	switch parent.Kind {
	case doctree.KindListItem, doctree.KindDefinition, doctree.KindEntry, doctree.KindFieldBody:
		if index == 0 {
			return false
		}
	case doctree.KindCompound:
		if index > 0 {
			if prev := parent.Children[index-1].Kind; prev != doctree.KindParagraph && prev != doctree.KindCompound {
				return false
			}
		}
	}
	for _, s := range parent.Children[:index] {
		if !tightSibling(s.Kind) {
			return true
		}
	}
	return false
}

func tightSibling(k doctree.Kind) bool {
	for _, s := range tightSiblings {
		if s == k {
			return true
		}
	}
	return false
}

func (t *Translator) visitParagraph(n *doctree.Node, ctx *nodeContext) error {
	if paragraphSeparated(n) {
		ctx.push("\n")
	}
	if labels := t.idsToLabels(n, true); labels != "" {
		ctx.push(labels, "\n")
	}
	t.visitInline(n, n.Attrs.Classes, ctx)
	ctx.close("\n")
	return nil
}

var admonitionLabels = map[string]string{
	"attention": "Attention",
	"caution":   "Caution",
	"danger":    "Danger",
	"error":     "Error",
	"hint":      "Hint",
	"important": "Important",
	"note":      "Note",
	"seealso":   "See also",
	"tip":       "Tip",
	"todo_node": "Todo",
	"warning":   "Warning",
}

func admonitionLabel(tag string) string {
	if l, ok := admonitionLabels[tag]; ok {
		return l
	}
	return tag
}

// admonitionClasses strips generic "admonition" class, specific admonitions
// get their tag as the leading class.
func admonitionClasses(n *doctree.Node) []string {
	classes := make([]string, 0, len(n.Attrs.Classes)+1)
	if doctree.IsSpecificAdmonition(n.Tag) {
		classes = append(classes, n.Tag)
	}
	for _, c := range n.Attrs.Classes {
		if c != "admonition" && c != n.Tag {
			classes = append(classes, c)
		}
	}
	return classes
}

func (t *Translator) visitAdmonition(n *doctree.Node, ctx *nodeContext) error {
	t.fallback(fbAdmonition)
	classes := admonitionClasses(n)
	for _, c := range classes {
		if c == "error" {
			t.require(reqColor)
			t.fallback(fbError)
		}
	}
	ctx.push("\n\\DUadmonition[" + strings.Join(classes, ",") + "]{\n")
	if doctree.IsSpecificAdmonition(n.Tag) && n.FirstChild(doctree.KindTitle) == nil {
		t.fallback(fbTitle)
		ctx.push(`\DUtitle[` + n.Tag + `]{` + Mask(admonitionLabel(n.Tag)) + "}\n")
	}
	ctx.close("}\n")
	return nil
}

func (t *Translator) visitDocInfoItem(n *doctree.Node, ctx *nodeContext) {
	name := n.Kind.String()
	if n.Kind == doctree.KindAuthor {
		t.info.Authors = append(t.info.Authors, attval(n.AsText()))
	}
	ctx.push(`\textbf{` + Mask(admonitionLabel(name)) + "}: &\n\t")
	if n.Kind == doctree.KindAddress {
		ctx.push("{\\raggedright\n")
		ctx.close(" } \\\\\n")
	} else {
		ctx.close(" \\\\\n")
	}
}
