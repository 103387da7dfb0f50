package latex

import (
	"strings"
	"unicode/utf8"

	"dtex/doctree"
)

type bibItem struct {
	Label   string
	Text    string
	DocName string
	ID      string
}

// widestLabel returns the longest label counting characters, first one wins
// on ties.
func widestLabel(items []bibItem) string {
	widest := ""
	for _, it := range items {
		if utf8.RuneCountInString(it.Label) > utf8.RuneCountInString(widest) {
			widest = it.Label
		}
	}
	return widest
}

func renderBibliography(items []bibItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\\begin{thebibliography}{" + Mask(widestLabel(items)) + "}\n")
	for _, it := range items {
		b.WriteString(`\bibitem[` + Mask(it.Label) + `]{` + MaskID(it.Label) + `}{`)
		b.WriteString(hypertarget(it.DocName+":"+it.ID, true))
		b.WriteString(" " + it.Text + "}\n")
	}
	b.WriteString("\\end{thebibliography}\n")
	return b.String()
}

// visitCitation captures citation text into the bibliography instead of the
// body.
func (t *Translator) visitCitation(n *doctree.Node, ctx *nodeContext) error {
	item := bibItem{DocName: t.curFile()}
	if label := n.FirstChild(doctree.KindLabel); label != nil {
		item.Label = strings.TrimSpace(label.AsText())
	}
	if len(n.Attrs.IDs) > 0 {
		item.ID = n.Attrs.IDs[0]
	}
	ctx.capture = func(text string) {
		item.Text = strings.TrimSpace(text)
		t.bib = append(t.bib, item)
	}
	return nil
}

func (t *Translator) visitCitationReference(n *doctree.Node, ctx *nodeContext) error {
	ctx.push(`\cite{` + MaskID(strings.TrimSpace(n.AsText())) + `}`)
	ctx.children = nil
	return nil
}
