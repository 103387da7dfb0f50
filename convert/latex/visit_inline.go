package latex

import (
	"errors"
	"strings"

	"dtex/doctree"
)

// visitInline wraps node content into role or language switch for every
// class, nested in order of classes.
func (t *Translator) visitInline(n *doctree.Node, classes []string, ctx *nodeContext) {
	for _, cls := range classes {
		if cls == "align-center" {
			t.fallback(fbAlignCenter)
		}
		if code, ok := strings.CutPrefix(cls, "language-"); ok {
			start, end, ok := t.poly.foreignLanguage(code)
			if !ok {
				t.diagnose(n, "language "+code+" is not supported by polyglossia")
				continue
			}
			ctx.push(start)
			ctx.close(end)
			continue
		}
		t.fallback(fbInline)
		ctx.push(`\DUrole{` + cls + `}{`)
		ctx.close(`}`)
	}
}

func (t *Translator) visitStyled(n *doctree.Node, open string, ctx *nodeContext) error {
	ctx.push(open)
	ctx.close(`}`)
	t.visitInline(n, n.Attrs.Classes, ctx)
	return nil
}

var uriSchemes = []string{"http:", "https:", "ftp:", "mailto:"}

var uriEscaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`, `#`, `\#`, `%`, `\%`)

func encodeURI(uri string) string {
	return uriEscaper.Replace(uri)
}

func (t *Translator) visitReference(n *doctree.Node, uri string, ctx *nodeContext) error {
	if uri == "" && n.Attrs.RefID != "" {
		uri = "%" + t.curFile() + "#" + n.Attrs.RefID
	}
	if t.inTitle > 0 || uri == "" {
		return nil
	}
	for _, scheme := range uriSchemes {
		if !strings.HasPrefix(uri, scheme) {
			continue
		}
		if len(n.Children) == 1 && n.Children[0].Kind == doctree.KindText && n.Children[0].Text == uri {
			ctx.push(`\url{` + encodeURI(uri) + `}`)
			ctx.children = nil
			return nil
		}
		ctx.push(`\href{` + encodeURI(uri) + `}{`)
		ctx.close(`}`)
		return nil
	}
	var id string
	switch {
	case strings.HasPrefix(uri, "#"):
		id = t.curFile() + ":" + uri[1:]
	case strings.HasPrefix(uri, "%"):
		if doc, anchor, ok := strings.Cut(uri[1:], "#"); ok {
			id = doc + ":" + anchor
		} else {
			id = doc + "::doc"
		}
	default:
		t.diagnose(n, "unusable reference target found: "+uri)
		return nil
	}
	ctx.push(`{\hyperref[` + MaskID(id) + `]{`)
	ctx.close(`}}`)
	return nil
}

// visitPendingXref resolves reference, unresolvable targets keep their text
// marked with "unresolved" role.
func (t *Translator) visitPendingXref(n *doctree.Node, ctx *nodeContext) error {
	var (
		uri string
		err = ErrNoURI
	)
	if t.opts.Resolver != nil {
		uri, err = t.opts.Resolver.Resolve(t.curFile(), n)
	}
	if err != nil {
		if !errors.Is(err, ErrNoURI) {
			return err
		}
		t.diagnose(n, "unresolved reference target: "+n.Attrs.RefTarget)
		t.fallback(fbInline)
		ctx.push(`\DUrole{unresolved}{`)
		ctx.close(`}`)
		return nil
	}
	return t.visitReference(n, uri, ctx)
}

func (t *Translator) visitTarget(n *doctree.Node, ctx *nodeContext) error {
	if n.Attrs.RefURI != "" || n.Attrs.RefID != "" {
		return errSkipNode
	}
	if labels := t.idsToLabels(n, true); labels != "" {
		ctx.push(labels)
	}
	return nil
}

var indexEscaper = strings.NewReplacer(`!`, `"!`, `@`, `"@`)

func indexTerm(s string) string {
	return indexEscaper.Replace(Mask(strings.TrimSpace(s)))
}

func splitIndexValue(value string, n int) []string {
	parts := strings.SplitN(value, ";", n)
	for i := range parts {
		parts[i] = indexTerm(parts[i])
	}
	return parts
}

func (t *Translator) visitIndex(n *doctree.Node, ctx *nodeContext) error {
	for _, e := range n.Attrs.Entries {
		style := ""
		if e.Main == "main" {
			style = "|textbf"
		}
		switch e.Type {
		case "single":
			p := splitIndexValue(e.Value, 2)
			if len(p) == 2 {
				ctx.push(`\index{` + p[0] + `!` + p[1] + style + `}`)
			} else {
				ctx.push(`\index{` + p[0] + style + `}`)
			}
		case "pair":
			p := splitIndexValue(e.Value, 2)
			if len(p) != 2 {
				t.diagnose(n, "pair index entry needs two values: "+e.Value)
				continue
			}
			ctx.push(`\index{`+p[0]+`!`+p[1]+style+`}`, `\index{`+p[1]+`!`+p[0]+style+`}`)
		case "triple":
			p := splitIndexValue(e.Value, 3)
			if len(p) != 3 {
				t.diagnose(n, "triple index entry needs three values: "+e.Value)
				continue
			}
			ctx.push(
				`\index{`+p[0]+`!`+p[1]+` `+p[2]+style+`}`,
				`\index{`+p[1]+`!`+p[2]+`, `+p[0]+style+`}`,
				`\index{`+p[2]+`!`+p[0]+` `+p[1]+style+`}`)
		case "see", "seealso":
			p := splitIndexValue(e.Value, 2)
			if len(p) != 2 {
				t.diagnose(n, e.Type+" index entry needs two values: "+e.Value)
				continue
			}
			ctx.push(`\index{` + p[0] + `|` + e.Type + `{` + p[1] + `}}`)
		default:
			t.diagnose(n, "unknown index entry type: "+e.Type)
		}
	}
	ctx.children = nil
	return nil
}

func (t *Translator) visitRaw(n *doctree.Node, ctx *nodeContext) error {
	for _, f := range strings.Fields(n.Attrs.Format) {
		if f == "latex" || f == "xelatex" {
			ctx.push(n.AsText())
			ctx.children = nil
			return nil
		}
	}
	return errSkipNode
}
