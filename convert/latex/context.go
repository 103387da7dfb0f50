package latex

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dtex/doctree"
)

// ErrContextImbalance signals broken enter/leave pairing, this is always a
// traversal bug and never caused by input.
var ErrContextImbalance = errors.New("context stack imbalance")

// nodeContext is the per visit scratch space. Body fragments are flushed in
// order followed by the end tags in reverse order of insertion.
type nodeContext struct {
	kind    doctree.Kind
	node    *doctree.Node
	body    []string
	endTags []string
	parent  *nodeContext

	// children to walk, visit handlers may replace or drop them
	children []*doctree.Node
	// capture receives flushed text instead of the enclosing context
	capture func(string)
}

func (c *nodeContext) push(s ...string) {
	c.body = append(c.body, s...)
}

// close registers closing fragment, the last one registered is emitted first.
func (c *nodeContext) close(s string) {
	c.endTags = append(c.endTags, s)
}

func (c *nodeContext) String() string {
	var b strings.Builder
	for _, s := range c.body {
		b.WriteString(s)
	}
	for _, s := range slices.Backward(c.endTags) {
		b.WriteString(s)
	}
	return b.String()
}

// contextStacks keeps one LIFO stack per node kind. Current points to the
// innermost context of the traversal regardless of kind.
type contextStacks struct {
	stacks  [doctree.KindCount][]*nodeContext
	current *nodeContext
}

func (s *contextStacks) enter(n *doctree.Node) *nodeContext {
	ctx := &nodeContext{kind: n.Kind, node: n, parent: s.current}
	s.stacks[n.Kind] = append(s.stacks[n.Kind], ctx)
	s.current = ctx
	return ctx
}

func (s *contextStacks) leave(kind doctree.Kind) (*nodeContext, error) {
	if kind < 0 || kind >= doctree.KindCount {
		return nil, fmt.Errorf("leaving invalid kind %d: %w", kind, ErrContextImbalance)
	}
	stack := s.stacks[kind]
	if len(stack) == 0 {
		return nil, fmt.Errorf("leaving %s which was never entered: %w", kind, ErrContextImbalance)
	}
	ctx := stack[len(stack)-1]
	if ctx != s.current {
		open := "nothing"
		if s.current != nil {
			open = s.current.kind.String()
		}
		return nil, fmt.Errorf("leaving %s while %s is open: %w", kind, open, ErrContextImbalance)
	}
	s.stacks[kind] = stack[:len(stack)-1]
	s.current = ctx.parent
	return ctx, nil
}

func (s *contextStacks) depth(kind doctree.Kind) int {
	return len(s.stacks[kind])
}

// check verifies that all stacks have been unwound.
func (s *contextStacks) check() error {
	for k, stack := range s.stacks {
		if len(stack) != 0 {
			return fmt.Errorf("%d %s context(s) left open: %w", len(stack), doctree.Kind(k), ErrContextImbalance)
		}
	}
	if s.current != nil {
		return fmt.Errorf("traversal did not return to the root: %w", ErrContextImbalance)
	}
	return nil
}
