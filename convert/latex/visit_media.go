package latex

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/h2non/filetype"

	"dtex/doctree"
)

var supportedImageTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/gif":       true,
	"image/jpeg":      true,
}

// extAliases maps spellings filetype does not register to ones it does.
var extAliases = map[string]string{"jpeg": "jpg", "tiff": "tif"}

// ImageExt returns lower case extension of uri without dot, with alternative
// spellings folded.
func ImageExt(uri string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(uri), "."))
	if alias, ok := extAliases[ext]; ok {
		return alias
	}
	return ext
}

// supportedImage checks image type by its extension, eps has no registered
// MIME type and is accepted as is.
func supportedImage(uri string) bool {
	ext := ImageExt(uri)
	if ext == "eps" {
		return true
	}
	if ext == "" {
		return false
	}
	kind := filetype.GetType(ext)
	return kind != filetype.Unknown && supportedImageTypes[kind.MIME.Value]
}

func baseName(p string) string {
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}

// imageDestination assigns unique destination name to image source.
func (t *Translator) imageDestination(src string) string {
	if dst, ok := t.images[src]; ok {
		return dst
	}
	taken := make(map[string]bool, len(t.images))
	for _, dst := range t.images {
		taken[dst] = true
	}
	base := baseName(src)
	dst := base
	ext := path.Ext(base)
	for i := 1; taken[dst]; i++ {
		dst = strings.TrimSuffix(base, ext) + strconv.Itoa(i) + ext
	}
	t.images[src] = dst
	return dst
}

var lengthUnits = []string{"pt", "px", "em", "ex", "cm", "mm", "in", "pc", "bp"}

// latexLength converts CSS-like length into LaTeX one.
func latexLength(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if num, ok := strings.CutSuffix(v, "%"); ok {
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf(`%.3f\linewidth`, f/100), true
	}
	for _, u := range lengthUnits {
		if num, ok := strings.CutSuffix(v, u); ok {
			if _, err := strconv.ParseFloat(num, 64); err != nil {
				return "", false
			}
			if u == "px" {
				u = "bp"
			}
			return num + u, true
		}
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v + "bp", true
	}
	return "", false
}

func (t *Translator) visitImage(n *doctree.Node, ctx *nodeContext) error {
	ctx.children = nil
	uri := n.Attrs.URI
	if !supportedImage(uri) {
		t.diagnose(n, "image type is not supported: "+uri)
		ctx.push(`\fbox{\texttt{` + Mask(uri) + `}}`)
		return nil
	}
	t.require(reqGraphicx)

	var opts []string
	for _, name := range []string{"width", "height"} {
		v, ok := n.Get(name)
		if !ok {
			continue
		}
		if l, ok := latexLength(v); ok {
			opts = append(opts, name+"="+l)
		} else {
			t.diagnose(n, fmt.Sprintf("image %s %q is not understood", name, v))
		}
	}
	if v, ok := n.Get("scale"); ok {
		if s, err := strconv.ParseFloat(v, 64); err == nil {
			opts = append(opts, "scale="+strconv.FormatFloat(s/100, 'f', -1, 64))
		}
	}
	cmd := `\includegraphics`
	if len(opts) > 0 {
		cmd += "[" + strings.Join(opts, ",") + "]"
	}
	ctx.push(cmd + "{" + t.imageDestination(uri) + "}")
	if n.Parent != nil && n.Parent.Kind != doctree.KindFigure && n.Parent.Kind != doctree.KindParagraph {
		ctx.push("\n")
	}
	return nil
}

func (t *Translator) visitFigure(n *doctree.Node, ctx *nodeContext) error {
	ctx.push("\n\\begin{figure}[htbp]\n\\centering\n")
	if n.FirstChild(doctree.KindCaption) == nil {
		if labels := t.idsToLabels(n, true); labels != "" {
			ctx.push(labels + "\n")
		}
	}
	ctx.close("\\end{figure}\n")
	return nil
}

func (t *Translator) visitCaption(n *doctree.Node, ctx *nodeContext) error {
	t.restrict(n)
	ctx.push("\n\\caption{")
	labels := ""
	if n.Parent != nil && n.Parent.Kind == doctree.KindFigure {
		labels = t.idsToLabels(n.Parent, false)
	}
	ctx.close(labels + "\n")
	ctx.close(`}`)
	return nil
}

func (t *Translator) visitLiteralBlock(n *doctree.Node, ctx *nodeContext) error {
	ctx.children = nil
	code := n.AsText()
	hl := t.hlStack[len(t.hlStack)-1]
	lang := n.Attrs.Language
	if lang == "" {
		lang = hl.lang
	}
	lines := strings.Count(strings.TrimRight(code, "\n"), "\n") + 1
	linenos := n.Attrs.Linenos || lines > hl.threshold

	block, err := t.highlighter.block(code, lang, linenos)
	if err != nil {
		t.diagnose(n, err.Error())
		if block, err = t.highlighter.block(code, "text", linenos); err != nil {
			return err
		}
	}
	t.require(reqFancyvrb)
	t.require(reqColor)
	ctx.push("\n")
	if labels := t.idsToLabels(n, true); labels != "" {
		ctx.push(labels + "\n")
	}
	ctx.push(block)
	return nil
}
