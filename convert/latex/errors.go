package latex

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnsupportedNode is returned when translator meets node kind it
	// cannot handle and the kind is not in the optional list.
	ErrUnsupportedNode = errors.New("unsupported node")

	// errSkipNode is returned by visit handlers to skip node's children and
	// its departure.
	errSkipNode = errors.New("skip node")
)

// FatalError aborts translation of a single document and points to the node
// which caused it.
type FatalError struct {
	DocName string
	Source  string
	Line    int
	Tag     string
	Err     error
}

func (e *FatalError) Error() string {
	where := e.DocName
	if e.Source != "" && e.Source != e.DocName {
		where += " (" + e.Source + ")"
	}
	if e.Line > 0 {
		where += ":" + strconv.Itoa(e.Line)
	}
	return fmt.Sprintf("%s: <%s>: %v", where, e.Tag, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Diagnostic is non-fatal translation problem, translation continues.
type Diagnostic struct {
	DocName string
	Source  string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	s := d.DocName
	if d.Line > 0 {
		s += ":" + strconv.Itoa(d.Line)
	}
	if s == "" {
		return d.Message
	}
	return s + ": " + d.Message
}
