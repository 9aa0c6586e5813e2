// Package mdast is the markdown syntax tree consumed by the converter. Nodes
// carry parent and sibling links so converters can look at their neighbours;
// raw markup shows up as HTMLInline (one tag per node) and HTMLBlock nodes.
package mdast

// NodeType identifies a markdown node.
type NodeType int

// Node types.
const (
	Document NodeType = iota
	Paragraph
	Heading
	Text
	Softbreak
	Linebreak
	Emph
	Strong
	Strike
	Code
	Link
	Image
	CodeBlock
	HTMLBlock
	HTMLInline
	BlockQuote
	List
	Item
	ThematicBreak
	Table
	TableHead
	TableBody
	TableRow
	TableCell
)

var typeNames = [...]string{
	Document:      "document",
	Paragraph:     "paragraph",
	Heading:       "heading",
	Text:          "text",
	Softbreak:     "softbreak",
	Linebreak:     "linebreak",
	Emph:          "emph",
	Strong:        "strong",
	Strike:        "strike",
	Code:          "code",
	Link:          "link",
	Image:         "image",
	CodeBlock:     "codeBlock",
	HTMLBlock:     "htmlBlock",
	HTMLInline:    "htmlInline",
	BlockQuote:    "blockQuote",
	List:          "list",
	Item:          "item",
	ThematicBreak: "thematicBreak",
	Table:         "table",
	TableHead:     "tableHead",
	TableBody:     "tableBody",
	TableRow:      "tableRow",
	TableCell:     "tableCell",
}

func (t NodeType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Node is a markdown syntax node.
type Node struct {
	Type NodeType
	// Literal is the raw payload of leaves: text, code, or markup.
	Literal string

	Level       int    // heading level
	Ordered     bool   // list
	Start       int    // ordered list start
	Task        bool   // list item with a checkbox
	Checked     bool   // list item checkbox state
	Destination string // link and image
	Title       string // link and image
	Info        string // code block language
	Align       string // table cell: left, center, right or ""

	Parent     *Node
	Prev       *Node
	Next       *Node
	FirstChild *Node
	LastChild  *Node
}

// New returns a detached node.
func New(t NodeType, literal string) *Node {
	return &Node{Type: t, Literal: literal}
}

// AppendChild links c as the last child of n and returns c.
func (n *Node) AppendChild(c *Node) *Node {
	c.Parent = n
	c.Next = nil
	c.Prev = n.LastChild
	if n.LastChild != nil {
		n.LastChild.Next = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	return c
}

// Append appends children and returns n, for building trees in one expression.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// WalkStatus steers Walk.
type WalkStatus int

const (
	// WalkContinue descends into children.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren does not descend; the exit event is still delivered.
	WalkSkipChildren
	// WalkStop ends the walk.
	WalkStop
)

// Walker is called when entering and when leaving every node.
type Walker func(n *Node, entering bool) (WalkStatus, error)

// Walk visits the subtree rooted at n in document order.
func Walk(n *Node, fn Walker) error {
	_, err := walk(n, fn)
	return err
}

func walk(n *Node, fn Walker) (WalkStatus, error) {
	status, err := fn(n, true)
	if err != nil || status == WalkStop {
		return WalkStop, err
	}
	if status != WalkSkipChildren {
		for c := n.FirstChild; c != nil; c = c.Next {
			if st, err := walk(c, fn); err != nil || st == WalkStop {
				return WalkStop, err
			}
		}
	}
	if status, err = fn(n, false); err != nil || status == WalkStop {
		return WalkStop, err
	}
	return WalkContinue, nil
}
