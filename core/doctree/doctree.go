// Package doctree is the rich-document tree produced by the converter.
// Block nodes own their children; marks style inline content and may overlap.
// The JSON shape matches the editor's document format:
//
//	{"type":"paragraph","attrs":{...},"content":[{"type":"text","text":"hi","marks":[...]}]}
package doctree

import "strings"

// NodeType names a node in the document schema.
type NodeType string

// Node types.
const (
	NodeDoc           NodeType = "doc"
	NodeParagraph     NodeType = "paragraph"
	NodeHeading       NodeType = "heading"
	NodeCodeBlock     NodeType = "codeBlock"
	NodeBulletList    NodeType = "bulletList"
	NodeOrderedList   NodeType = "orderedList"
	NodeListItem      NodeType = "listItem"
	NodeBlockQuote    NodeType = "blockQuote"
	NodeTable         NodeType = "table"
	NodeTableHead     NodeType = "tableHead"
	NodeTableBody     NodeType = "tableBody"
	NodeTableRow      NodeType = "tableRow"
	NodeTableHeadCell NodeType = "tableHeadCell"
	NodeTableBodyCell NodeType = "tableBodyCell"
	NodeImage         NodeType = "image"
	NodeThematicBreak NodeType = "thematicBreak"
	NodeHTMLComment   NodeType = "htmlComment"
	NodeHTMLBlock     NodeType = "htmlBlock"
	NodeDiv           NodeType = "div"
	NodeText          NodeType = "text"
)

// IsInline reports whether nodes of this type take part in inline content
// and therefore carry the marks active when they were added.
func (t NodeType) IsInline() bool {
	return t == NodeText || t == NodeImage
}

// MarkType names an inline mark in the document schema.
type MarkType string

// Mark types.
const (
	MarkStrong MarkType = "strong"
	MarkEmph   MarkType = "emph"
	MarkStrike MarkType = "strike"
	MarkCode   MarkType = "code"
	MarkLink   MarkType = "link"
	MarkSpan   MarkType = "span"
)

// Attrs holds node or mark attributes. A nil value is a deliberate null
// (the attribute exists in the schema but was absent in the source).
type Attrs map[string]any

// String returns the attribute as a string, or "" when absent, null or not a string.
func (a Attrs) String(key string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns the attribute as a bool, false when absent.
func (a Attrs) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Int returns the attribute as an int, 0 when absent.
func (a Attrs) Int(key string) int {
	n, _ := a[key].(int)
	return n
}

// Clone returns a shallow copy.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Mark is an instance of a mark type with its attributes.
type Mark struct {
	Type  MarkType `json:"type"`
	Attrs Attrs    `json:"attrs,omitempty"`
}

// Node is a sealed node of the document tree.
type Node struct {
	Type    NodeType `json:"type"`
	Attrs   Attrs    `json:"attrs,omitempty"`
	Content []*Node  `json:"content,omitempty"`
	Marks   []Mark   `json:"marks,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// TextContent concatenates the text of the node and all its descendants.
func (n *Node) TextContent() string {
	if n.Type == NodeText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Content {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of that node.
func Walk(n *Node, fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Content {
		Walk(c, fn)
	}
}

// HasMark reports whether the node carries a mark of type t.
func (n *Node) HasMark(t MarkType) bool {
	for _, m := range n.Marks {
		if m.Type == t {
			return true
		}
	}
	return false
}

func sameMarks(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || !sameAttrs(a[i].Attrs, b[i].Attrs) {
			return false
		}
	}
	return true
}

func sameAttrs(a, b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v != w {
			return false
		}
	}
	return true
}
