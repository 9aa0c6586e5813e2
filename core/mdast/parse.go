package mdast

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Parser turns markdown source into a syntax tree using goldmark with the
// GitHub extensions (tables, strikethrough, task lists, autolinks).
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Parse parses source and returns the document node.
func (p *Parser) Parse(source []byte) (*Node, error) {
	root := p.md.Parser().Parse(text.NewReader(source))
	doc := New(Document, "")
	t := &translator{source: source}
	t.children(root, doc)
	return doc, nil
}

// translator copies a goldmark tree into mdast nodes. goldmark folds soft and
// hard breaks into the preceding text; they become separate nodes here.
type translator struct {
	source []byte
}

func (t *translator) children(gn ast.Node, parent *Node) {
	for c := gn.FirstChild(); c != nil; c = c.NextSibling() {
		t.node(c, parent)
	}
}

func (t *translator) node(gn ast.Node, parent *Node) {
	switch n := gn.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		t.children(gn, parent.AppendChild(New(Paragraph, "")))

	case *ast.Heading:
		h := New(Heading, "")
		h.Level = n.Level
		t.children(gn, parent.AppendChild(h))

	case *ast.Text:
		if v := t.textValue(n); len(v) > 0 {
			parent.AppendChild(New(Text, string(v)))
		}
		switch {
		case n.HardLineBreak():
			parent.AppendChild(New(Linebreak, ""))
		case n.SoftLineBreak():
			parent.AppendChild(New(Softbreak, ""))
		}

	case *ast.String:
		parent.AppendChild(New(Text, string(n.Value)))

	case *ast.CodeSpan:
		parent.AppendChild(New(Code, t.inlineText(gn)))

	case *ast.Emphasis:
		typ := Emph
		if n.Level >= 2 {
			typ = Strong
		}
		t.children(gn, parent.AppendChild(New(typ, "")))

	case *east.Strikethrough:
		t.children(gn, parent.AppendChild(New(Strike, "")))

	case *ast.Link:
		l := New(Link, "")
		l.Destination = string(n.Destination)
		l.Title = string(n.Title)
		t.children(gn, parent.AppendChild(l))

	case *ast.AutoLink:
		l := New(Link, "")
		l.Destination = string(n.URL(t.source))
		parent.AppendChild(l).AppendChild(New(Text, string(n.Label(t.source))))

	case *ast.Image:
		img := New(Image, t.inlineText(gn))
		img.Destination = string(n.Destination)
		img.Title = string(n.Title)
		parent.AppendChild(img)

	case *ast.RawHTML:
		var b bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(t.source))
		}
		parent.AppendChild(New(HTMLInline, b.String()))

	case *ast.FencedCodeBlock:
		cb := New(CodeBlock, t.lines(n.Lines()))
		cb.Info = string(n.Language(t.source))
		parent.AppendChild(cb)

	case *ast.CodeBlock:
		parent.AppendChild(New(CodeBlock, t.lines(n.Lines())))

	case *ast.HTMLBlock:
		literal := t.lines(n.Lines())
		if n.HasClosure() {
			literal += string(n.ClosureLine.Value(t.source))
		}
		parent.AppendChild(New(HTMLBlock, literal))

	case *ast.Blockquote:
		t.children(gn, parent.AppendChild(New(BlockQuote, "")))

	case *ast.List:
		l := New(List, "")
		l.Ordered = n.IsOrdered()
		l.Start = n.Start
		t.children(gn, parent.AppendChild(l))

	case *ast.ListItem:
		t.children(gn, parent.AppendChild(New(Item, "")))

	case *east.TaskCheckBox:
		for p := parent; p != nil; p = p.Parent {
			if p.Type == Item {
				p.Task = true
				p.Checked = n.IsChecked
				break
			}
		}

	case *ast.ThematicBreak:
		parent.AppendChild(New(ThematicBreak, ""))

	case *east.Table:
		t.table(n, parent.AppendChild(New(Table, "")))

	default:
		t.children(gn, parent)
	}
}

// table splits goldmark's header row and body rows into head and body sections.
func (t *translator) table(gn *east.Table, table *Node) {
	var body *Node
	for c := gn.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *east.TableHeader:
			t.row(c, table.AppendChild(New(TableHead, "")))
		case *east.TableRow:
			if body == nil {
				body = table.AppendChild(New(TableBody, ""))
			}
			t.row(c, body)
		}
	}
}

func (t *translator) row(gn ast.Node, section *Node) {
	row := section.AppendChild(New(TableRow, ""))
	for c := gn.FirstChild(); c != nil; c = c.NextSibling() {
		cell := New(TableCell, "")
		if tc, ok := c.(*east.TableCell); ok && tc.Alignment != east.AlignNone {
			cell.Align = tc.Alignment.String()
		}
		t.children(c, row.AppendChild(cell))
	}
}

func (t *translator) lines(segs *text.Segments) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(t.source))
	}
	return b.String()
}

// textValue returns the text of n with backslash escapes and character
// references resolved. Raw text (code span content) is returned as written.
func (t *translator) textValue(n *ast.Text) []byte {
	v := n.Segment.Value(t.source)
	if n.IsRaw() {
		return v
	}
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}

// inlineText flattens the text below gn, e.g. for code spans and image alt text.
func (t *translator) inlineText(gn ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(gn, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(t.textValue(v))
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
