package latex

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// Templates are the building blocks of the output. They are expanded with
// text/template using <% %> delimiters so LaTeX braces need no escaping.
type Templates struct {
	Header   string
	BeginDoc string
	Footer   string
}

const defaultHeader = `% Generated by <% .generator %>
\documentclass[<% .papersize %>,<% .pointsize %><% .classoptions %>]{<% .docclass %>}
% set program xelatex
\usepackage{fontspec}
<% .requirements %>

% Custom LaTeX preamble
<% .preamble %>

% Fallback definitions for Docutils-specific commands
<% .fallbacks %>
<% .pdfsetup %>
<% .tocdepth %>

\title{<% .title %>}
\date{<% .date %>}
\author{<% .author %>}
\providecommand{\sphinxlogo}{<% .logo %>}
\providecommand{\releasename}{<% .releasename %>}
\providecommand{\release}{<% .release %>}
<% .makeindex %>
`

const defaultBeginDoc = `
\begin{document}
<% .maketitle %>
<% .tableofcontents %>
`

const defaultFooter = `
\renewcommand{\indexname}{<% .indexname %>}
<% .printindex %>
\end{document}
`

// DefaultTemplates returns built in templates.
func DefaultTemplates() Templates {
	return Templates{Header: defaultHeader, BeginDoc: defaultBeginDoc, Footer: defaultFooter}
}

// LoadTemplates replaces built in templates with content of non empty file
// names.
func LoadTemplates(header, beginDoc, footer string) (Templates, error) {
	tmpls := DefaultTemplates()
	for _, t := range []struct {
		path string
		dst  *string
	}{{header, &tmpls.Header}, {beginDoc, &tmpls.BeginDoc}, {footer, &tmpls.Footer}} {
		if t.path == "" {
			continue
		}
		data, err := os.ReadFile(t.path)
		if err != nil {
			return tmpls, fmt.Errorf("unable to read template %q: %w", t.path, err)
		}
		*t.dst = string(data)
	}
	return tmpls, nil
}

// renderTemplate expands named template over elements, missing elements are
// rendered as empty strings.
func renderTemplate(name, text string, elements map[string]string) (string, error) {
	tmpl, err := template.New(name).
		Delims("<%", "%>").
		Option("missingkey=zero").
		Funcs(sprig.FuncMap()).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("unable to parse template %s: %w", name, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, elements); err != nil {
		return "", fmt.Errorf("unable to expand template %s: %w", name, err)
	}
	return buf.String(), nil
}
