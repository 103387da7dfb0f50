package latex

import (
	"fmt"

	"dtex/doctree"
)

// visit dispatches node to the handler of its kind.
func (t *Translator) visit(n *doctree.Node, ctx *nodeContext) error {
	switch n.Kind {
	case doctree.KindDocument:
		return t.visitDocument(n, ctx)
	case doctree.KindStartOfFile:
		return t.visitStartOfFile(n, ctx)
	case doctree.KindSection:
		t.dclass.enterSection()
		return nil
	case doctree.KindTitle:
		return t.visitTitle(n, ctx)
	case doctree.KindSubtitle:
		return t.visitSubtitle(n, ctx)
	case doctree.KindParagraph:
		return t.visitParagraph(n, ctx)
	case doctree.KindText:
		ctx.push(Mask(n.Text))
		return nil
	case doctree.KindInline:
		t.visitInline(n, n.Attrs.Classes, ctx)
		return nil
	case doctree.KindEmphasis:
		return t.visitStyled(n, `\emph{`, ctx)
	case doctree.KindStrong:
		return t.visitStyled(n, `\textbf{`, ctx)
	case doctree.KindLiteral:
		return t.visitStyled(n, `\texttt{`, ctx)
	case doctree.KindSuperscript:
		return t.visitStyled(n, `\textsuperscript{`, ctx)
	case doctree.KindSubscript:
		return t.visitStyled(n, `\textsubscript{`, ctx)
	case doctree.KindTitleReference:
		t.fallback(fbTitleReference)
		return t.visitStyled(n, `\DUroletitlereference{`, ctx)
	case doctree.KindAbbreviation, doctree.KindAcronym:
		t.visitInline(n, append([]string{n.Kind.String()}, n.Attrs.Classes...), ctx)
		return nil
	case doctree.KindProblematic:
		t.require(reqColor)
		ctx.push(`{\color{red}\bfseries{}`)
		ctx.close(`}`)
		return nil
	case doctree.KindReference:
		return t.visitReference(n, n.Attrs.RefURI, ctx)
	case doctree.KindPendingXref:
		return t.visitPendingXref(n, ctx)
	case doctree.KindTarget:
		return t.visitTarget(n, ctx)
	case doctree.KindFootnote:
		// rendered at the point of reference
		return errSkipNode
	case doctree.KindFootnoteReference:
		return t.visitFootnoteReference(n, ctx)
	case doctree.KindCollectedFootnote:
		return t.visitCollectedFootnote(n, ctx)
	case doctree.KindLabel:
		return errSkipNode
	case doctree.KindCitation:
		return t.visitCitation(n, ctx)
	case doctree.KindCitationReference:
		return t.visitCitationReference(n, ctx)
	case doctree.KindBulletList:
		ctx.push("%\n\\begin{itemize}\n")
		ctx.close("\n\\end{itemize}\n")
		return nil
	case doctree.KindEnumeratedList:
		return t.visitEnumeratedList(n, ctx)
	case doctree.KindListItem:
		// "{}" protects a following "[" from being read as optional argument
		ctx.push(`\item {} `)
		ctx.close("\n")
		return nil
	case doctree.KindDefinitionList:
		ctx.push("%\n\\begin{description}\n")
		ctx.close("\\end{description}\n")
		return nil
	case doctree.KindDefinitionListItem:
		if labels := t.idsToLabels(n, true); labels != "" {
			ctx.push(labels + "%\n")
		}
		return nil
	case doctree.KindTerm:
		t.restrict(n)
		ctx.push(`\item[{`)
		ctx.close(`}] `)
		return nil
	case doctree.KindDefinition:
		ctx.push("\n")
		ctx.close("\n")
		return nil
	case doctree.KindBlockQuote:
		ctx.push("%\n\\begin{quote}\n")
		ctx.close("\n\\end{quote}\n")
		t.visitInline(n, n.Attrs.Classes, ctx)
		return nil
	case doctree.KindLiteralBlock:
		return t.visitLiteralBlock(n, ctx)
	case doctree.KindLineBlock:
		return t.visitLineBlock(n, ctx)
	case doctree.KindLine:
		return t.visitLine(n, ctx)
	case doctree.KindTable:
		return t.visitTable(n, ctx)
	case doctree.KindTGroup:
		return t.visitTGroup(n, ctx)
	case doctree.KindColSpec:
		return t.visitColSpec(n, ctx)
	case doctree.KindTHead, doctree.KindTBody:
		return t.visitTablePart(n, ctx)
	case doctree.KindRow:
		return t.visitRow(n, ctx)
	case doctree.KindEntry:
		return t.visitEntry(n, ctx)
	case doctree.KindFigure:
		return t.visitFigure(n, ctx)
	case doctree.KindImage:
		return t.visitImage(n, ctx)
	case doctree.KindCaption:
		return t.visitCaption(n, ctx)
	case doctree.KindLegend:
		t.fallback(fbLegend)
		ctx.push("\\begin{DUlegend}\n")
		ctx.close("\\end{DUlegend}\n")
		return nil
	case doctree.KindAdmonition:
		return t.visitAdmonition(n, ctx)
	case doctree.KindTopic, doctree.KindSidebar:
		t.require(reqFancybox)
		t.fallback(fbShadowBox)
		ctx.push("\n\\begin{SphinxShadowBox}\n")
		ctx.close("\\end{SphinxShadowBox}\n")
		return nil
	case doctree.KindSeeAlso:
		ctx.push("\n\n\\textbf{" + Mask(admonitionLabel("seealso")) + "}\n\n")
		ctx.close("\n\n")
		return nil
	case doctree.KindHighlightLang:
		t.hlStack[len(t.hlStack)-1] = hlSetting{lang: n.Attrs.Language, threshold: n.Attrs.LinenoThreshold}
		return errSkipNode
	case doctree.KindCompound, doctree.KindContainer:
		return nil
	case doctree.KindComment, doctree.KindDecoration, doctree.KindToctree, doctree.KindSystemMessage,
		doctree.KindSubstitutionDefinition:
		return errSkipNode
	case doctree.KindLiteralStrong:
		ctx.push(`\texttt{`)
		ctx.close(`}`)
		return t.visitStyled(n, `\textbf{`, ctx)
	case doctree.KindLiteralEmphasis:
		ctx.push(`\texttt{`)
		ctx.close(`}`)
		return t.visitStyled(n, `\emph{`, ctx)
	case doctree.KindRubric:
		t.fallback(fbRubric)
		ctx.push("\n\n\\DUrubric{")
		ctx.close("}\n")
		return nil
	case doctree.KindAttribution:
		ctx.push("\\nopagebreak\n\n\\raggedleft ---")
		ctx.close("\n")
		return nil
	case doctree.KindFieldList, doctree.KindField, doctree.KindFieldName, doctree.KindFieldBody:
		t.visitField(n, ctx)
		return nil
	case doctree.KindTransition:
		t.fallback(fbTransition)
		ctx.push("\n\n%___________________________________________________________________________\n\\DUtransition\n\n")
		ctx.children = nil
		return nil
	case doctree.KindDocInfo:
		ctx.push("\n\\begin{center}\n\\begin{tabular}{rl}\n")
		ctx.close("\\end{tabular}\n\\end{center}\n")
		return nil
	case doctree.KindAuthor, doctree.KindAddress:
		t.visitDocInfoItem(n, ctx)
		return nil
	case doctree.KindIndex:
		return t.visitIndex(n, ctx)
	case doctree.KindRaw:
		return t.visitRaw(n, ctx)
	case doctree.KindUnknown:
		if t.optional(n.Tag) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Tag)
	}
	return fmt.Errorf("%w: %s (kind %d)", ErrUnsupportedNode, n.Tag, n.Kind)
}

// depart dispatches node departure, kinds without special needs flush their
// context into enclosing one.
func (t *Translator) depart(n *doctree.Node, ctx *nodeContext) error {
	switch n.Kind {
	case doctree.KindDocument:
		return t.departDocument(n, ctx)
	case doctree.KindStartOfFile:
		t.flush(ctx)
		t.leaveFile()
		return nil
	case doctree.KindSection:
		t.flush(ctx)
		t.dclass.leaveSection()
		return nil
	case doctree.KindTitle:
		t.flush(ctx)
		t.inTitle--
		t.unrestrict(n)
		return nil
	case doctree.KindTerm, doctree.KindCaption, doctree.KindFieldName:
		t.flush(ctx)
		t.unrestrict(n)
		return nil
	case doctree.KindTable:
		return t.departTable(n, ctx)
	case doctree.KindRow:
		return t.departRow(n, ctx)
	}
	t.flush(ctx)
	return nil
}
