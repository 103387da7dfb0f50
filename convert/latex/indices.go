package latex

import (
	"strings"

	"dtex/config"
)

// IndexEntry is single line of a domain index. Entries without anchor are
// not rendered.
type IndexEntry struct {
	Name        string `yaml:"name"`
	Subtype     int    `yaml:"subtype,omitempty"`
	DocName     string `yaml:"docname"`
	Anchor      string `yaml:"anchor"`
	Extra       string `yaml:"extra,omitempty"`
	Qualifier   string `yaml:"qualifier,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// IndexGroup holds entries under the same letter.
type IndexGroup struct {
	Letter  string       `yaml:"letter"`
	Entries []IndexEntry `yaml:"entries"`
}

// DomainIndex is generated content of one domain index.
type DomainIndex struct {
	Domain    string       `yaml:"domain"`
	Name      string       `yaml:"name"`
	LocalName string       `yaml:"localname"`
	Groups    []IndexGroup `yaml:"groups"`
}

// FullName returns "domain-name" used to select index in configuration.
func (d DomainIndex) FullName() string {
	return d.Domain + "-" + d.Name
}

// IndexRegistry supplies domain indices for the output.
type IndexRegistry interface {
	Indices() []DomainIndex
}

func generateIndices(reg IndexRegistry, enabled *config.DomainIndices) string {
	if reg == nil || enabled == nil {
		return ""
	}
	var b strings.Builder
	for _, idx := range reg.Indices() {
		if !enabled.Enabled(idx.FullName()) || len(idx.Groups) == 0 {
			continue
		}
		b.WriteString(`\renewcommand{\indexname}{` + Mask(idx.LocalName) + "}\n")
		b.WriteString("\\begin{theindex}\n")
		for i, g := range idx.Groups {
			if i > 0 {
				b.WriteString("\\indexspace\n")
			}
			b.WriteString(Mask(g.Letter) + "\n")
			for _, e := range g.Entries {
				if e.Anchor == "" {
					continue
				}
				b.WriteString(`\item {\texttt{` + Mask(e.Name) + `}}`)
				if e.Extra != "" {
					b.WriteString(` \emph{(` + Mask(e.Extra) + `)}`)
				}
				b.WriteString(`, \pageref{` + MaskID(e.DocName+":"+e.Anchor) + "}\n")
			}
		}
		b.WriteString("\\end{theindex}\n")
	}
	return b.String()
}
