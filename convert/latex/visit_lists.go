package latex

import (
	"fmt"
	"strconv"
	"strings"

	"dtex/doctree"
)

var enumStyles = map[string]string{
	"arabic":     "arabic",
	"loweralpha": "alph",
	"upperalpha": "Alph",
	"lowerroman": "roman",
	"upperroman": "Roman",
}

func (t *Translator) visitEnumeratedList(n *doctree.Node, ctx *nodeContext) error {
	ctx.push("%\n\\begin{enumerate}\n")
	ctx.close("\n\\end{enumerate}\n")

	// LaTeX knows four levels of enumeration counters
	depth := t.stacks.depth(doctree.KindEnumeratedList)
	if depth > 4 {
		return nil
	}
	counter := "enum" + strings.ToLower(roman(depth))
	if style, ok := enumStyles[n.Attrs.Extra["enumtype"]]; ok {
		ctx.push(fmt.Sprintf(`\renewcommand{\label%s}{%s\%s{%s}%s}`+"\n",
			counter, Mask(n.Attrs.Extra["prefix"]), style, counter, Mask(n.Attrs.Extra["suffix"])))
	}
	if start, err := strconv.Atoi(n.Attrs.Extra["start"]); err == nil && start > 1 {
		ctx.push(fmt.Sprintf("\\setcounter{%s}{%d}\n", counter, start-1))
	}
	return nil
}

func (t *Translator) visitLineBlock(n *doctree.Node, ctx *nodeContext) error {
	t.fallback(fbLineBlock)
	if n.Parent != nil && n.Parent.Kind == doctree.KindLineBlock {
		ctx.push("\\item[]\n\\begin{DUlineblock}{\\DUlineblockindent}\n")
	} else {
		ctx.push("\n\\begin{DUlineblock}{0em}\n")
	}
	ctx.close("\\end{DUlineblock}\n")
	return nil
}

func (t *Translator) visitLine(n *doctree.Node, ctx *nodeContext) error {
	if len(n.Children) == 0 {
		ctx.push("\\item[]~\n")
		ctx.children = nil
		return nil
	}
	ctx.push(`\item[] `)
	ctx.close("\n")
	return nil
}

// visitField renders field lists as description lists. Fields of docinfo
// become rows of its table instead.
func (t *Translator) visitField(n *doctree.Node, ctx *nodeContext) {
	inDocInfo := n.Ancestor(doctree.KindDocInfo) != nil
	switch n.Kind {
	case doctree.KindFieldList:
		if !inDocInfo {
			ctx.push("%\n\\begin{description}\n")
			ctx.close("\\end{description}\n")
		}
	case doctree.KindField:
		if labels := t.idsToLabels(n, true); labels != "" && !inDocInfo {
			ctx.push(labels + "%\n")
		}
	case doctree.KindFieldName:
		t.restrict(n)
		if inDocInfo {
			ctx.push(`\textbf{`)
			ctx.close("}: &\n\t")
		} else {
			ctx.push(`\item[{`)
			ctx.close(`:}] `)
		}
	case doctree.KindFieldBody:
		if inDocInfo {
			ctx.close(" \\\\\n")
		} else {
			ctx.push("\n")
			ctx.close("\n")
		}
	}
}
