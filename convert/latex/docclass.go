package latex

import (
	"strings"

	"dtex/config"
)

var sectionNames = []string{"part", "chapter", "section", "subsection", "subsubsection", "paragraph", "subparagraph"}

// documentClass tracks heading depth. Counters has one entry per open
// heading level, entering a section bumps the parent's counter.
type documentClass struct {
	counters []int
	offset   int
	entered  int
	left     int
}

func newDocumentClass(toplevel config.Sectioning) *documentClass {
	dc := &documentClass{offset: 1}
	name := toplevel.Name()
	for i, n := range sectionNames {
		if n == name {
			dc.offset = i
			break
		}
	}
	return dc
}

func (dc *documentClass) enterSection() {
	if len(dc.counters) > 0 {
		dc.counters[len(dc.counters)-1]++
	}
	dc.counters = append(dc.counters, 1)
	dc.entered++
}

func (dc *documentClass) leaveSection() {
	if len(dc.counters) > 0 {
		dc.counters = dc.counters[:len(dc.counters)-1]
	}
	dc.left++
}

func (dc *documentClass) level() int {
	return len(dc.counters)
}

// sectionName returns sectioning command for the current depth. When depth
// is not supported by LaTeX the name of a generic title command is returned
// and ok is false.
func (dc *documentClass) sectionName() (name string, ok bool) {
	level := dc.offset + dc.level()
	if level < 1 {
		level = 1
	}
	if level <= len(sectionNames) {
		return sectionNames[level-1], true
	}
	return "DUtitle[section" + roman(level) + "]", false
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
