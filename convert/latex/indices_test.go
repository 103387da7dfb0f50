package latex

import (
	"testing"

	"dtex/config"
)

type testRegistry []DomainIndex

func (r testRegistry) Indices() []DomainIndex { return r }

func testIndices() testRegistry {
	return testRegistry{
		{
			Domain: "py", Name: "modindex", LocalName: "Python Module Index",
			Groups: []IndexGroup{
				{Letter: "A", Entries: []IndexEntry{
					{Name: "abc", DocName: "index", Anchor: "module-abc"},
					{Name: "abc.sub", DocName: "index", Anchor: ""},
				}},
				{Letter: "Z", Entries: []IndexEntry{
					{Name: "z_lib", DocName: "lib", Anchor: "module-zlib", Extra: "deprecated"},
				}},
			},
		},
		{Domain: "c", Name: "empty", LocalName: "Empty"},
		{
			Domain: "js", Name: "modindex", LocalName: "JS Index",
			Groups: []IndexGroup{{Letter: "J", Entries: []IndexEntry{{Name: "jq", DocName: "js", Anchor: "jq"}}}},
		},
	}
}

const pyIndex = `\renewcommand{\indexname}{Python Module Index}
\begin{theindex}
A
\item {\texttt{abc}}, \pageref{index:module-abc}
\indexspace
Z
\item {\texttt{z\_lib}} \emph{(deprecated)}, \pageref{lib:module-zlib}
\end{theindex}
`

const jsIndex = `\renewcommand{\indexname}{JS Index}
\begin{theindex}
J
\item {\texttt{jq}}, \pageref{js:jq}
\end{theindex}
`

func TestGenerateIndices(t *testing.T) {
	tests := []struct {
		name    string
		reg     IndexRegistry
		enabled *config.DomainIndices
		want    string
	}{
		{"all", testIndices(), &config.DomainIndices{All: true}, pyIndex + jsIndex},
		{"none", testIndices(), &config.DomainIndices{}, ""},
		{"selected", testIndices(), &config.DomainIndices{Names: []string{"js-modindex"}}, jsIndex},
		{"no registry", nil, &config.DomainIndices{All: true}, ""},
		{"no setting", testIndices(), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateIndices(tt.reg, tt.enabled); got != tt.want {
				t.Errorf("generateIndices() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestTranslate_IndicesBeforeFooter(t *testing.T) {
	res := translateTree(t, docNamed("index", para("x")), func(o *Options) { o.Indices = testIndices() })
	want := pyIndex + jsIndex + defaultFooterRendered
	if len(res.Text) < len(want) || res.Text[len(res.Text)-len(want):] != want {
		t.Errorf("indices must precede the footer:\n%s", res.Text)
	}
}

const defaultFooterRendered = `
\renewcommand{\indexname}{Index}
\printindex
\end{document}
`
