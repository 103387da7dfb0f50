package latex

import (
	"strings"
	"unicode"
)

// special maps characters reserved by TeX to their escaped forms.
var special = map[rune]string{
	'#':    `\#`,
	'$':    `\$`,
	'%':    `\%`,
	'&':    `\&`,
	'~':    `\textasciitilde{}`,
	'_':    `\_`,
	'^':    `\textasciicircum{}`,
	'\\':   `\textbackslash{}`,
	'{':    `\{`,
	'}':    `\}`,
	'[':    `{[}`,
	']':    `{]}`,
	'<':    `\textless{}`,
	'>':    `\textgreater{}`,
	'|':    `\textbar{}`,
	'"':    `\textquotedbl{}`,
	0x00A0: `~`,
	0x00AD: `\-`,
}

// ids differ in soft hyphen only, \- is not allowed inside labels.
var ids = func() map[rune]string {
	m := make(map[rune]string, len(special))
	for k, v := range special {
		m[k] = v
	}
	m[0x00AD] = `\string-`
	return m
}()

func translate(text string, table map[rune]string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if s, ok := table[r]; ok {
			b.WriteString(s)
			continue
		}
		if r != '\n' && r != '\t' && r != '\r' && unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Mask escapes text so it could be inserted into output literally.
func Mask(text string) string {
	return translate(text, special)
}

// MaskID escapes node identifier for use in \label and \ref commands.
func MaskID(id string) string {
	return translate(id, ids)
}

var whitespace = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\v", " ", "\f", " ")

// attval cleanses attribute value text: whitespace is collapsed to spaces and
// the result is masked.
func attval(text string) string {
	return Mask(whitespace.Replace(text))
}
