package latex

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlighter renders code blocks as fancyvrb Verbatim environments with
// \PYG markup. Style definitions are emitted only if a block was rendered.
type highlighter struct {
	style *chroma.Style
	used  bool
}

func newHighlighter(style string) *highlighter {
	if style == "" {
		style = "tango"
	}
	// styles.Get never returns nil, unknown names give fallback style
	return &highlighter{style: styles.Get(style)}
}

var verbatimEscaper = strings.NewReplacer(`\`, `\PYGZbs{}`, `{`, `\PYGZob{}`, `}`, `\PYGZcb{}`)

func lexerFor(lang, code string) chroma.Lexer {
	var lexer chroma.Lexer
	switch lang {
	case "", "none", "text":
		lexer = lexers.Get("plaintext")
	case "default":
		lexer = lexers.Get("python")
	case "guess":
		lexer = lexers.Analyse(code)
	default:
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// tokenClass returns short pygments class name of the token type.
func tokenClass(tt chroma.TokenType) string {
	for _, t := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if cls, ok := chroma.StandardTypes[t]; ok {
			return cls
		}
	}
	return ""
}

// block highlights code. Line numbers are requested with linenos.
func (h *highlighter) block(code, lang string, linenos bool) (string, error) {
	code = strings.TrimRight(code, "\n")
	it, err := lexerFor(lang, code).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("unable to tokenise %s code: %w", lang, err)
	}
	h.used = true

	var b strings.Builder
	for _, token := range it.Tokens() {
		cls := tokenClass(token.Type)
		plain := cls == "" || token.Type == chroma.Text || token.Type == chroma.TextWhitespace
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if part == "" {
				continue
			}
			if plain {
				b.WriteString(verbatimEscaper.Replace(part))
			} else {
				fmt.Fprintf(&b, `\PYG{%s}{%s}`, cls, verbatimEscaper.Replace(part))
			}
		}
	}
	opts := ""
	if linenos {
		opts = `,numbers=left,firstnumber=1,stepnumber=1`
	}
	// some lexers terminate input with newline
	body := strings.TrimRight(b.String(), "\n")
	return `\begin{Verbatim}[commandchars=\\\{\}` + opts + "]\n" + body + "\n\\end{Verbatim}\n", nil
}

func rgb(c chroma.Colour) string {
	return fmt.Sprintf("%.2f,%.2f,%.2f", float64(c.Red())/255, float64(c.Green())/255, float64(c.Blue())/255)
}

// stylesheet returns \PYG macro definitions for the style, or nothing when
// no code was highlighted.
func (h *highlighter) stylesheet() string {
	if !h.used {
		return ""
	}
	var b strings.Builder
	b.WriteString(`
\makeatletter
\def\PYG@reset{\let\PYG@it=\relax \let\PYG@bf=\relax%
    \let\PYG@ul=\relax \let\PYG@tc=\relax%
    \let\PYG@bc=\relax \let\PYG@ff=\relax}
\def\PYG@tok#1{\csname PYG@tok@#1\endcsname}
\def\PYG@toks#1+{\ifx\relax#1\empty\else%
    \PYG@tok{#1}\expandafter\PYG@toks\fi}
\def\PYG@do#1{\PYG@bc{\PYG@tc{\PYG@ul{%
    \PYG@it{\PYG@bf{\PYG@ff{#1}}}}}}}
\def\PYG#1#2{\PYG@reset\PYG@toks#1+\relax+\PYG@do{#2}}

`)
	classes := make(map[string]chroma.TokenType, len(chroma.StandardTypes))
	for tt, cls := range chroma.StandardTypes {
		if cls == "" || tt < 0 {
			continue
		}
		classes[cls] = tt
	}
	names := make([]string, 0, len(classes))
	for cls := range classes {
		names = append(names, cls)
	}
	slices.Sort(names)
	pageBg := h.style.Get(chroma.Background).Background
	for _, cls := range names {
		entry := h.style.Get(classes[cls])
		var def strings.Builder
		if entry.Bold == chroma.Yes {
			def.WriteString(`\let\PYG@bf=\textbf`)
		}
		if entry.Italic == chroma.Yes {
			def.WriteString(`\let\PYG@it=\textit`)
		}
		if entry.Underline == chroma.Yes {
			def.WriteString(`\let\PYG@ul=\underline`)
		}
		if entry.Colour.IsSet() {
			fmt.Fprintf(&def, `\def\PYG@tc##1{\textcolor[rgb]{%s}{##1}}`, rgb(entry.Colour))
		}
		if entry.Background.IsSet() && entry.Background != pageBg {
			fmt.Fprintf(&def, `\def\PYG@bc##1{\setlength{\fboxsep}{0pt}\colorbox[rgb]{%s}{\strut ##1}}`, rgb(entry.Background))
		}
		if def.Len() == 0 {
			continue
		}
		fmt.Fprintf(&b, "\\@namedef{PYG@tok@%s}{%s}\n", cls, def.String())
	}
	b.WriteString(`
\def\PYGZbs{\char`+"`"+`\\}
\def\PYGZob{\char`+"`"+`\{}
\def\PYGZcb{\char`+"`"+`\}}
\makeatother
`)
	return b.String()
}
