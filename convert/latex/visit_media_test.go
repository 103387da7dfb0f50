package latex

import (
	"maps"
	"strings"
	"testing"

	"dtex/doctree"
)

func image(uri string, attrs ...string) *doctree.Node {
	n := nd(doctree.KindImage)
	n.Attrs.URI = uri
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Set(attrs[i], attrs[i+1])
	}
	return n
}

func TestTranslate_Images(t *testing.T) {
	fig := withIDs(nd(doctree.KindFigure,
		image("images/pic.png", "width", "50%"),
		nd(doctree.KindCaption, txt("Cap"))), "fig1")
	tree := docNamed("index",
		fig,
		nd(doctree.KindParagraph, image("other/pic.png", "scale", "50")),
		image("images/pic.png"),
		image("drawing.svg"),
		image("plot.eps", "height", "huge"),
	)
	res := translateTree(t, tree, nil)

	for _, want := range []string{
		"\n\\begin{figure}[htbp]\n\\centering\n",
		`\includegraphics[width=0.500\linewidth]{pic.png}`,
		"\n\\caption{Cap}\\label{index:fig1}\n\\end{figure}\n",
		`\includegraphics[scale=0.5]{pic1.png}`,
		"\\includegraphics{pic.png}\n",
		`\fbox{\texttt{drawing.svg}}`,
		`\includegraphics{plot.eps}`,
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("output does not contain %q:\n%s", want, res.Text)
		}
	}
	want := map[string]string{"images/pic.png": "pic.png", "other/pic.png": "pic1.png", "plot.eps": "plot.eps"}
	if !maps.Equal(res.Images, want) {
		t.Errorf("Images = %v, want %v", res.Images, want)
	}
	if !hasDiagnostic(res, "image type is not supported: drawing.svg") {
		t.Error("unsupported image must be diagnosed")
	}
	if !hasDiagnostic(res, `image height "huge" is not understood`) {
		t.Error("bad length must be diagnosed")
	}
}

func TestTranslate_JpegSpelling(t *testing.T) {
	tree := docNamed("index", nd(doctree.KindParagraph, image("photos/cat.jpeg")))
	res := translateTree(t, tree, nil)

	if !strings.Contains(res.Text, `\includegraphics{cat.jpeg}`) {
		t.Errorf("output does not include image:\n%s", res.Text)
	}
	if res.Images["photos/cat.jpeg"] != "cat.jpeg" {
		t.Errorf("Images = %v", res.Images)
	}
	if hasDiagnostic(res, "image type is not supported") {
		t.Errorf("jpeg must be supported: %v", res.Diagnostics)
	}
}

func TestImageExt(t *testing.T) {
	tests := map[string]string{
		"a.jpeg": "jpg", "b.JPEG": "jpg", "c.tiff": "tif", "d.PNG": "png", "dir.v2/noext": "", "e.eps": "eps",
	}
	for uri, want := range tests {
		if got := ImageExt(uri); got != want {
			t.Errorf("ImageExt(%q) = %q, want %q", uri, got, want)
		}
	}
}

func TestTranslate_FigureWithoutCaption(t *testing.T) {
	fig := withIDs(nd(doctree.KindFigure, image("a.jpg"), nd(doctree.KindLegend, para("Legend."))), "f")
	res := translateTree(t, docNamed("index", fig), nil)
	for _, want := range []string{
		"\\centering\n\\phantomsection\\label{index:f}\n",
		`\begin{DUlegend}`,
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestLatexLength(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"50%", `0.500\linewidth`, true},
		{"10px", "10bp", true},
		{"2cm", "2cm", true},
		{"1.5em", "1.5em", true},
		{"100", "100bp", true},
		{"abc", "", false},
		{"x%", "", false},
	}
	for _, tt := range tests {
		got, ok := latexLength(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("latexLength(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSupportedImage(t *testing.T) {
	tests := map[string]bool{
		"a.png": true, "b.JPG": true, "c.jpeg": true, "d.gif": true, "e.pdf": true, "f.eps": true,
		"g.svg": false, "h.tiff": false, "noext": false,
	}
	for uri, want := range tests {
		if got := supportedImage(uri); got != want {
			t.Errorf("supportedImage(%q) = %v, want %v", uri, got, want)
		}
	}
}

func TestTranslate_LiteralBlock(t *testing.T) {
	code := func(lang, text string) *doctree.Node {
		n := nd(doctree.KindLiteralBlock, txt(text))
		n.Attrs.Language = lang
		return n
	}
	hl := nd(doctree.KindHighlightLang)
	hl.Attrs.Language, hl.Attrs.LinenoThreshold = "text", 1
	tree := docNamed("index",
		code("python", "def f():\n    pass\n"),
		hl,
		withIDs(code("", "a{b}\n\\c"), "listing"),
	)
	res := translateTree(t, tree, nil)

	for _, want := range []string{
		"\\begin{Verbatim}[commandchars=\\\\\\{\\}]\n",
		`\PYG{k}{def}`,
		"\\begin{Verbatim}[commandchars=\\\\\\{\\},numbers=left,firstnumber=1,stepnumber=1]\na\\PYGZob{}b\\PYGZcb{}\n\\PYGZbs{}c\n\\end{Verbatim}\n",
		"\\phantomsection\\label{index:listing}\n",
		`\def\PYG@reset`,
		`\usepackage{fancyvrb}`,
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("output does not contain %q:\n%s", want, res.Text)
		}
	}
}
