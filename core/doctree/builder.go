package doctree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStackUnderflow is returned when CloseNode is called with only the
// document root open.
var ErrStackUnderflow = errors.New("close node: no open node above the document root")

// UnbalancedError reports nodes still open when the document was finished.
type UnbalancedError struct {
	Open []NodeType
}

func (e *UnbalancedError) Error() string {
	names := make([]string, len(e.Open))
	for i, t := range e.Open {
		names[i] = string(t)
	}
	return fmt.Sprintf("unbalanced document: %d node(s) left open (%s)", len(e.Open), strings.Join(names, " > "))
}

// frame is an open node that still accepts children.
type frame struct {
	typ     NodeType
	attrs   Attrs
	content []*Node
}

// Builder assembles a document from open/close calls in document order.
// A node becomes part of its parent when it is closed. A Builder belongs to a
// single conversion and must not be shared between goroutines.
type Builder struct {
	stack []*frame
	marks []Mark
}

// NewBuilder returns a builder with the document root open.
func NewBuilder() *Builder {
	return &Builder{stack: []*frame{{typ: NodeDoc}}}
}

// OpenNode pushes a new node; subsequent content goes into it until CloseNode.
func (b *Builder) OpenNode(t NodeType, attrs Attrs) {
	b.stack = append(b.stack, &frame{typ: t, attrs: attrs})
}

// CloseNode seals the node on top of the stack and appends it to its parent.
func (b *Builder) CloseNode() (*Node, error) {
	if len(b.stack) < 2 {
		return nil, ErrStackUnderflow
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	n := &Node{Type: top.typ, Attrs: top.attrs, Content: top.content}
	b.push(n)
	return n, nil
}

// OpenMark activates a mark for all text added until the matching CloseMark.
func (b *Builder) OpenMark(m Mark) {
	b.marks = append(b.marks, m)
}

// CloseMark deactivates the most recently opened mark of type t.
// Closing a mark that is not active is a no-op.
func (b *Builder) CloseMark(t MarkType) {
	for i := len(b.marks) - 1; i >= 0; i-- {
		if b.marks[i].Type == t {
			b.marks = append(b.marks[:i:i], b.marks[i+1:]...)
			return
		}
	}
}

// AddNode appends a leaf node to the node on top of the stack. Inline leaves
// pick up the active marks.
func (b *Builder) AddNode(t NodeType, attrs Attrs) *Node {
	n := &Node{Type: t, Attrs: attrs}
	if t.IsInline() {
		n.Marks = b.activeMarks()
	}
	b.push(n)
	return n
}

// AddText appends text with the active marks, merging it into the previous
// text node when the marks are identical. Empty text is ignored.
func (b *Builder) AddText(s string) {
	if s == "" {
		return
	}
	top := b.top()
	if l := len(top.content); l > 0 {
		last := top.content[l-1]
		if last.Type == NodeText && sameMarks(last.Marks, b.marks) {
			last.Text += s
			return
		}
	}
	top.content = append(top.content, &Node{Type: NodeText, Text: s, Marks: b.activeMarks()})
}

// Top returns the type of the node currently accepting content.
func (b *Builder) Top() NodeType {
	return b.top().typ
}

// TopAttrs returns the attributes of the node currently accepting content.
func (b *Builder) TopAttrs() Attrs {
	return b.top().attrs
}

// ActiveMarks returns a copy of the marks currently applied to new text.
func (b *Builder) ActiveMarks() []Mark {
	return b.activeMarks()
}

// Finish asserts that every opened node was closed and returns the document.
// Marks left open are dropped.
func (b *Builder) Finish() (*Node, error) {
	if len(b.stack) != 1 {
		open := make([]NodeType, 0, len(b.stack)-1)
		for _, f := range b.stack[1:] {
			open = append(open, f.typ)
		}
		return nil, &UnbalancedError{Open: open}
	}
	root := b.stack[0]
	b.marks = nil
	return &Node{Type: NodeDoc, Attrs: root.attrs, Content: root.content}, nil
}

func (b *Builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) push(n *Node) {
	top := b.top()
	top.content = append(top.content, n)
}

func (b *Builder) activeMarks() []Mark {
	if len(b.marks) == 0 {
		return nil
	}
	out := make([]Mark, len(b.marks))
	copy(out, b.marks)
	return out
}
