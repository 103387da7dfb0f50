package latex

import (
	"fmt"
	"strconv"
	"strings"

	"dtex/doctree"
)

// tableState collects what is needed to open longtable: caption and column
// widths arrive before the first row.
type tableState struct {
	node      *doctree.Node
	caption   string
	colwidths []int
	cols      int
	col       int
	spans     map[int]int
	opened    bool
}

func (t *Translator) activeTable() *tableState {
	if len(t.tables) == 0 {
		return nil
	}
	return t.tables[len(t.tables)-1]
}

func (t *Translator) visitTable(n *doctree.Node, ctx *nodeContext) error {
	t.require(reqLongtab)
	t.restrict(n)
	t.tables = append(t.tables, &tableState{node: n, spans: make(map[int]int)})
	return nil
}

func (t *Translator) departTable(n *doctree.Node, ctx *nodeContext) error {
	if ts := t.activeTable(); ts != nil && ts.opened {
		ctx.push("\\end{longtable}\n")
	}
	t.flush(ctx)
	t.tables = t.tables[:len(t.tables)-1]
	t.unrestrict(n)
	return nil
}

func (t *Translator) visitTGroup(n *doctree.Node, _ *nodeContext) error {
	if ts := t.activeTable(); ts != nil {
		ts.cols, _ = strconv.Atoi(n.Attrs.Extra["cols"])
	}
	return nil
}

func (t *Translator) visitColSpec(n *doctree.Node, _ *nodeContext) error {
	if ts := t.activeTable(); ts != nil {
		ts.colwidths = append(ts.colwidths, n.Attrs.ColWidth)
	}
	return errSkipNode
}

func (t *Translator) openTable(ts *tableState) string {
	var b strings.Builder
	b.WriteString("\n\\begin{longtable}{|")
	total := 0
	for _, w := range ts.colwidths {
		total += w
	}
	cols := max(ts.cols, len(ts.colwidths))
	for i := range cols {
		if total > 0 && i < len(ts.colwidths) {
			fmt.Fprintf(&b, `p{%.3f\linewidth}|`, 0.9*float64(ts.colwidths[i])/float64(total))
		} else {
			b.WriteString("l|")
		}
	}
	b.WriteString("}\n")
	labels := t.idsToLabels(ts.node, false)
	if ts.caption != "" {
		b.WriteString(`\caption{` + ts.caption + `}` + labels + "\\\\\n")
	} else if labels != "" {
		b.WriteString(`\phantomsection` + labels + "%\n")
	}
	b.WriteString("\\hline\n")
	return b.String()
}

func (t *Translator) visitTablePart(n *doctree.Node, ctx *nodeContext) error {
	ts := t.activeTable()
	if ts == nil {
		return fmt.Errorf("%s outside of table", n.Tag)
	}
	if !ts.opened {
		ctx.push(t.openTable(ts))
		ts.opened = true
	}
	if n.Kind == doctree.KindTHead {
		ctx.close("\\endhead\n")
	}
	return nil
}

func (t *Translator) visitRow(n *doctree.Node, _ *nodeContext) error {
	ts := t.activeTable()
	if ts == nil {
		return fmt.Errorf("%s outside of table", n.Tag)
	}
	ts.col = 0
	return nil
}

func (t *Translator) departRow(_ *doctree.Node, ctx *nodeContext) error {
	if ts := t.activeTable(); ts != nil {
		ts.skipSpanned(ctx)
	}
	ctx.push("\\\\\n\\hline\n")
	t.flush(ctx)
	return nil
}

// skipSpanned emits empty cells for columns covered by cells from rows
// above.
func (ts *tableState) skipSpanned(ctx *nodeContext) {
	for ts.spans[ts.col] > 0 {
		ts.spans[ts.col]--
		if ts.col > 0 {
			ctx.push("&")
		}
		ctx.push(" ")
		ts.col++
	}
}

func (t *Translator) visitEntry(n *doctree.Node, ctx *nodeContext) error {
	ts := t.activeTable()
	if ts == nil {
		return fmt.Errorf("%s outside of table", n.Tag)
	}
	ts.skipSpanned(ctx)
	if ts.col > 0 {
		ctx.push("&")
	}
	width := 1 + n.Attrs.MoreCols
	if n.Attrs.MoreCols > 0 {
		border := "l|"
		if ts.col == 0 {
			border = "|l|"
		}
		ctx.push(fmt.Sprintf(`\multicolumn{%d}{%s}{`, width, border))
		ctx.close(`}`)
	}
	if n.Attrs.MoreRows > 0 {
		t.require(reqMultirow)
		ctx.push(fmt.Sprintf(`\multirow{%d}{*}{`, n.Attrs.MoreRows+1))
		ctx.close(`}`)
		for c := ts.col; c < ts.col+width; c++ {
			ts.spans[c] = n.Attrs.MoreRows
		}
	}
	ts.col += width
	return nil
}
