package doctree

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Load reads docutils XML from r and builds the document tree. Source is
// recorded on every node for diagnostics.
func Load(r io.Reader, source string, log *zap.Logger) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read document tree: %w", err)
	}
	return FromXML(doc, source, log)
}

// FromXML converts parsed docutils XML DOM into the document tree.
func FromXML(doc *etree.Document, source string, log *zap.Logger) (*Node, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	if root.Tag != "document" {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}
	p := &loader{source: source, log: log}
	return p.element(root), nil
}

type loader struct {
	source string
	log    *zap.Logger
}

func (p *loader) element(el *etree.Element) *Node {
	n := NewTag(el.Tag)
	n.Source = p.source
	p.attributes(n, el)

	if n.Kind == KindUnknown {
		p.log.Debug("Unknown element, keeping as is", zap.String("tag", el.Tag), zap.String("source", p.source))
	}

	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.Element:
			n.Append(p.element(t))
		case *etree.CharData:
			if !n.Kind.textual() && strings.TrimSpace(t.Data) == "" {
				continue
			}
			text := NewText(t.Data)
			text.Source, text.Line = p.source, n.Line
			n.Append(text)
		}
	}
	return n
}

func (p *loader) attributes(n *Node, el *etree.Element) {
	a := &n.Attrs
	for _, attr := range el.Attr {
		key := attr.Key
		if attr.Space != "" {
			key = attr.Space + ":" + attr.Key
		}
		switch key {
		case "ids":
			a.IDs = splitNames(attr.Value)
		case "names":
			a.Names = splitNames(attr.Value)
		case "classes":
			a.Classes = splitNames(attr.Value)
		case "docname":
			a.DocName = attr.Value
		case "refuri":
			a.RefURI = attr.Value
		case "refid":
			a.RefID = attr.Value
		case "reftarget":
			a.RefTarget = attr.Value
		case "refdomain":
			a.RefDomain = attr.Value
		case "reftype":
			a.RefType = attr.Value
		case "refdoc":
			a.RefDoc = attr.Value
		case "lang", "language":
			a.Language = attr.Value
		case "linenothreshold":
			a.LinenoThreshold = parseInt(attr.Value, math.MaxInt)
		case "linenos":
			a.Linenos = parseBool(attr.Value)
		case "uri":
			a.URI = attr.Value
		case "format":
			a.Format = attr.Value
		case "colwidth":
			a.ColWidth = parseInt(attr.Value, 0)
		case "morecols":
			a.MoreCols = parseInt(attr.Value, 0)
		case "morerows":
			a.MoreRows = parseInt(attr.Value, 0)
		case "entries":
			entries, err := parseIndexEntries(attr.Value)
			if err != nil {
				p.log.Warn("Unable to parse index entries, ignoring", zap.String("source", p.source), zap.String("value", attr.Value), zap.Error(err))
				continue
			}
			a.Entries = entries
		case "includefiles":
			a.IncludeFiles = parseStringList(attr.Value)
		case "line":
			n.Line = parseInt(attr.Value, 0)
		default:
			n.Set(key, attr.Value)
		}
	}
	if n.Kind == KindHighlightLang && a.LinenoThreshold == 0 {
		a.LinenoThreshold = math.MaxInt
	}
}

// splitNames splits docutils name lists, spaces inside names are escaped with
// a backslash.
func splitNames(value string) []string {
	var (
		out []string
		cur strings.Builder
		esc bool
	)
	for _, r := range value {
		switch {
		case esc:
			cur.WriteRune(r)
			esc = false
		case r == '\\':
			esc = true
		case r == ' ':
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func parseInt(value string, def int) int {
	value = strings.TrimSpace(value)
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return def
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Lists of tuples are serialized as python literals, tokens we care about are
// quoted strings, None, and parentheses.
var reprToken = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)"|None|True|False|[()]`)

func unquoteRepr(m []string) string {
	s := m[1]
	if s == "" {
		s = m[2]
	}
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	esc := false
	for _, r := range s {
		if esc {
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(r)
			}
			esc = false
			continue
		}
		if r == '\\' {
			esc = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseIndexEntries(value string) ([]IndexEntry, error) {
	var (
		out    []IndexEntry
		fields []string
		open   bool
	)
	for _, m := range reprToken.FindAllStringSubmatch(value, -1) {
		switch m[0] {
		case "(":
			if open {
				return nil, errors.New("nested tuple")
			}
			open, fields = true, fields[:0]
		case ")":
			if !open {
				return nil, errors.New("unbalanced tuple")
			}
			open = false
			if len(fields) < 3 {
				return nil, fmt.Errorf("index entry has %d fields, need at least 3", len(fields))
			}
			e := IndexEntry{Type: fields[0], Value: fields[1], TargetID: fields[2]}
			if len(fields) > 3 {
				e.Main = fields[3]
			}
			if len(fields) > 4 {
				e.Key = fields[4]
			}
			out = append(out, e)
		case "None", "True", "False":
			if open {
				fields = append(fields, "")
			}
		default:
			if open {
				fields = append(fields, unquoteRepr(m))
			}
		}
	}
	if open {
		return nil, errors.New("unterminated tuple")
	}
	return out, nil
}

func parseStringList(value string) []string {
	var out []string
	for _, m := range reprToken.FindAllStringSubmatch(value, -1) {
		if strings.HasPrefix(m[0], "'") || strings.HasPrefix(m[0], `"`) {
			out = append(out, unquoteRepr(m))
		}
	}
	if out == nil && strings.TrimSpace(value) != "" && !strings.HasPrefix(strings.TrimSpace(value), "[") {
		out = strings.Fields(value)
	}
	return out
}
