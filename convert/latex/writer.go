package latex

import (
	"strings"
)

// PDFInfo is document metadata to be embedded into PDF.
type PDFInfo struct {
	Title   string
	Authors []string
}

// Result of a single document translation.
type Result struct {
	Text string
	// Images maps image source path to destination file name.
	Images       map[string]string
	Info         PDFInfo
	Requirements []string
	Fallbacks    []string
	Diagnostics  []Diagnostic
}

// result assembles final text: header, highlighting styles, body, footer,
// indices.
func (t *Translator) result() (*Result, error) {
	t.requirements.set(reqPolyglot, t.poly.String())
	if t.info.Title == "" {
		t.info.Title = t.elements["title"]
	}
	t.elements["requirements"] = t.requirements.String()
	t.elements["fallbacks"] = t.fallbacks.String()
	t.elements["pdfsetup"] = t.pdfSetup()

	header, err := renderTemplate("header", t.templates.Header, t.elements)
	if err != nil {
		return nil, err
	}
	footer, err := renderTemplate("footer", t.templates.Footer, t.elements)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(t.highlighter.stylesheet())
	b.WriteString(t.out.String())
	b.WriteString("\n" + t.elements["footer"] + "\n")
	b.WriteString(generateIndices(t.opts.Indices, t.opts.Document.DomainIndices))
	b.WriteString(footer)

	return &Result{
		Text:         b.String(),
		Images:       t.images,
		Info:         t.info,
		Requirements: t.requirements.values(),
		Fallbacks:    t.fallbacks.values(),
		Diagnostics:  t.diagnostics,
	}, nil
}
