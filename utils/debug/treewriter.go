// Package debug has helpers producing human readable dumps of internal
// structures.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// Attr is a name/value pair printed by Element.
type Attr struct {
	Name  string
	Value string
	// List values are printed in brackets, comma separated.
	List []string
}

type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Element writes a single line with element name followed by non-empty
// attributes in the order given.
func (tw TreeWriter) Element(depth int, name string, attrs ...Attr) {
	tw.pad(depth)
	tw.w.WriteString(name)
	for _, a := range attrs {
		switch {
		case len(a.List) > 0:
			tw.w.WriteString(" " + a.Name + "=[" + strings.Join(a.List, ",") + "]")
		case a.Value != "":
			tw.w.WriteString(" " + a.Name + "=" + strconv.Quote(a.Value))
		}
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
