package latex

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// polyglossiaLanguages lists gloss names known to polyglossia.
var polyglossiaLanguages = map[string]bool{
	"albanian": true, "amharic": true, "arabic": true, "armenian": true, "asturian": true,
	"basque": true, "belarusian": true, "bengali": true, "bosnian": true, "breton": true,
	"bulgarian": true, "catalan": true, "coptic": true, "croatian": true, "czech": true,
	"danish": true, "divehi": true, "dutch": true, "english": true, "esperanto": true,
	"estonian": true, "finnish": true, "french": true, "friulian": true, "gaelic": true,
	"galician": true, "georgian": true, "german": true, "greek": true, "hebrew": true,
	"hindi": true, "hungarian": true, "icelandic": true, "interlingua": true, "italian": true,
	"japanese": true, "kannada": true, "khmer": true, "korean": true, "kurdish": true,
	"lao": true, "latin": true, "latvian": true, "lithuanian": true, "macedonian": true,
	"malay": true, "malayalam": true, "marathi": true, "mongolian": true, "norwegian": true,
	"occitan": true, "persian": true, "piedmontese": true, "polish": true, "portuguese": true,
	"romanian": true, "romansh": true, "russian": true, "sanskrit": true, "serbian": true,
	"slovak": true, "slovenian": true, "spanish": true, "swedish": true, "syriac": true,
	"tamil": true, "telugu": true, "thai": true, "tibetan": true, "turkish": true,
	"turkmen": true, "ukrainian": true, "urdu": true, "vietnamese": true, "welsh": true,
}

// English display names which differ from gloss names.
var glossAliases = map[string]string{
	"norwegian bokmål":  "norwegian",
	"norwegian nynorsk": "norwegian",
	"scottish gaelic":   "gaelic",
	"irish":             "gaelic",
	"modern greek":      "greek",
	"upper sorbian":     "sorbian",
	"lower sorbian":     "sorbian",
}

// polyglossia selects the default language of the document and tracks other
// languages used by inline language switches.
type polyglossia struct {
	main   string
	others map[string]bool
}

func newPolyglossia(code string) (*polyglossia, bool) {
	p := &polyglossia{main: "english", others: make(map[string]bool)}
	if code == "" {
		return p, true
	}
	name, ok := glossName(code)
	if ok {
		p.main = name
	}
	return p, ok
}

// glossName maps BCP 47 language code to polyglossia gloss name.
func glossName(code string) (string, bool) {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	name := strings.ToLower(display.English.Languages().Name(base))
	if alias, ok := glossAliases[name]; ok {
		name = alias
	}
	if !polyglossiaLanguages[name] {
		return "", false
	}
	return name, true
}

// foreignLanguage returns opening and closing fragments switching to the
// language.
func (p *polyglossia) foreignLanguage(code string) (start, end string, ok bool) {
	name, ok := glossName(code)
	if !ok {
		return "", "", false
	}
	if name != p.main {
		p.others[name] = true
	}
	return `\text` + name + `{`, `}`, true
}

func (p *polyglossia) String() string {
	var b strings.Builder
	b.WriteString("\\usepackage{polyglossia}\n\\setdefaultlanguage{" + p.main + "}")
	for _, name := range slices.Sorted(maps.Keys(p.others)) {
		b.WriteString("\n\\setotherlanguage{" + name + "}")
	}
	return b.String()
}
