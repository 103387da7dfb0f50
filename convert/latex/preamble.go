package latex

import (
	"maps"
	"slices"
	"strings"
)

// Package requirements, keyed so output order is stable.
const (
	reqStatic   = "__static"
	reqColor    = "color"
	reqGraphicx = "graphicx"
	reqLongtab  = "longtable"
	reqMultirow = "multirow"
	reqFancyvrb = "fancyvrb"
	reqFancybox = "fancybox"
	reqPolyglot = "polyglossia"
)

var requirementTexts = map[string]string{
	reqStatic:   `\usepackage{ifthen}`,
	reqColor:    `\usepackage{color}`,
	reqGraphicx: `\usepackage{graphicx}`,
	reqLongtab:  `\usepackage{longtable,array}`,
	reqMultirow: `\usepackage{multirow}`,
	reqFancyvrb: `\usepackage{fancyvrb}`,
	reqFancybox: `\usepackage{fancybox}`,
}

// Fallback definitions for docutils specific commands.
const (
	fbInline         = "inline"
	fbAdmonition     = "admonition"
	fbError          = "error"
	fbTitle          = "title"
	fbTitleReference = "titlereference"
	fbAlignCenter    = "align-center"
	fbShadowBox      = "shadowbox"
	fbLegend         = "legend"
	fbLineBlock      = "lineblock"
	fbTransition     = "transition"
	fbRubric         = "rubric"
)

var fallbackTexts = map[string]string{
	fbInline: `% inline markup (custom roles)
% \DUrole{#1}{#2} tries \DUrole#1{#2}
\providecommand*{\DUrole}[2]{%
  \ifcsname DUrole#1\endcsname%
    \csname DUrole#1\endcsname{#2}%
  \else%
    #2%
  \fi%
}`,
	fbAdmonition: `% admonition (specially marked topic)
\providecommand{\DUadmonition}[2][class-arg]{%
  % try \DUadmonition#1{#2}:
  \ifcsname DUadmonition#1\endcsname%
    \csname DUadmonition#1\endcsname{#2}%
  \else
    \begin{center}
      \fbox{\parbox{0.9\linewidth}{#2}}
    \end{center}
  \fi
}`,
	fbError: `% error admonition title
\providecommand*{\DUtitleerror}[1]{\DUtitle{\color{red}#1}}`,
	fbTitle: `% title for topics, admonitions, unsupported section levels, and sidebar
\providecommand*{\DUtitle}[2][class-arg]{%
  % call \DUtitle#1{#2} if it exists:
  \ifcsname DUtitle#1\endcsname%
    \csname DUtitle#1\endcsname{#2}%
  \else
    \smallskip\noindent\textbf{#2}\smallskip%
  \fi
}`,
	fbTitleReference: `% titlereference role
\providecommand*{\DUroletitlereference}[1]{\textsl{#1}}`,
	fbAlignCenter: `\makeatletter
\@namedef{DUrolealign-center}{\centering}
\makeatother`,
	fbShadowBox: `% topic and sidebar box
\ifthenelse{\isundefined{\SphinxShadowBox}}{
  \newenvironment{SphinxShadowBox}
    {\begin{Sbox}\begin{minipage}{0.95\linewidth}}
    {\end{minipage}\end{Sbox}\shadowbox{\TheSbox}}
}{}`,
	fbLegend: `% legend environment
\ifthenelse{\isundefined{\DUlegend}}{
  \newenvironment{DUlegend}{\small}{}
}{}`,
	fbLineBlock: `% line block environment
\providecommand*{\DUlineblockindent}{2.5em}
\ifthenelse{\isundefined{\DUlineblock}}{
  \newenvironment{DUlineblock}[1]{%
    \list{}{\setlength{\partopsep}{\parskip}
            \addtolength{\partopsep}{\baselineskip}
            \setlength{\topsep}{0pt}
            \setlength{\itemsep}{0.15\baselineskip}
            \setlength{\parsep}{0pt}
            \setlength{\leftmargin}{#1}}
    \raggedright
  }
  {\endlist}
}{}`,
	fbRubric: `% rubric (informal heading)
\providecommand*{\DUrubric}[2][class-arg]{%
  \subsubsection*{\centering\textit{\textmd{#2}}}}`,
	fbTransition: `% transition (break, fancybreak, anonymous section)
\providecommand*{\DUtransition}{%
  \hspace*{\fill}\hrulefill\hspace*{\fill}
  \vskip 0.5\baselineskip
}`,
}

// sortedDict renders values ordered by key.
type sortedDict map[string]string

func (d sortedDict) set(key, value string) {
	d[key] = value
}

func (d sortedDict) values() []string {
	out := make([]string, 0, len(d))
	for _, k := range slices.Sorted(maps.Keys(d)) {
		out = append(out, d[k])
	}
	return out
}

func (d sortedDict) String() string {
	return strings.Join(d.values(), "\n")
}

func (t *Translator) require(key string) {
	if text, ok := requirementTexts[key]; ok {
		t.requirements.set(key, text)
	}
}

func (t *Translator) fallback(key string) {
	if text, ok := fallbackTexts[key]; ok {
		t.fallbacks.set(key, text)
	}
}

// pdfSetup returns hyperref setup with collected PDF properties.
func (t *Translator) pdfSetup() string {
	var b strings.Builder
	b.WriteString(`% hyperlinks:
\ifthenelse{\isundefined{\hypersetup}}{
  \usepackage[colorlinks=true,linkcolor=blue,urlcolor=blue]{hyperref}
  \usepackage{bookmark}
  \urlstyle{same}
}{}
`)
	var info []string
	if t.info.Title != "" {
		info = append(info, "  pdftitle={"+t.info.Title+"}")
	}
	if len(t.info.Authors) > 0 {
		info = append(info, "  pdfauthor={"+strings.Join(t.info.Authors, `; `)+"}")
	}
	if len(info) > 0 {
		b.WriteString("\\hypersetup{\n")
		b.WriteString(strings.Join(info, ",\n"))
		b.WriteString("\n}\n")
	}
	return b.String()
}
