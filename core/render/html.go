// Package render provides output renderers for the richtree pipeline.
// This file implements the HTML renderer, which writes a document back out as
// markup. Nodes and marks converted from embedded tags keep the tag name they
// were written with, along with their forwarded attributes.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/doctree"
	"golang.org/x/net/html"
)

// internalAttrs are converter bookkeeping, never written as HTML attributes.
var internalAttrs = map[string]bool{
	"rawHTML":   true,
	"linkUrl":   true,
	"language":  true,
	"html":      true,
	"textAlign": true,
}

// HTMLRenderer renders a document as HTML.
type HTMLRenderer struct {
	highlight bool
	style     string
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithHighlight highlights code blocks with the named chroma style.
func WithHighlight(style string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.highlight = true
		r.style = style
	}
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes a complete HTML page.
func (r *HTMLRenderer) Render(doc *doctree.Node, meta core.DocumentMetadata) ([]byte, error) {
	body, err := r.Fragment(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(meta.Title))
	buf.WriteString("</head>\n<body>\n")
	buf.WriteString(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// Fragment renders the content of doc without a page around it, one block per line.
func (r *HTMLRenderer) Fragment(doc *doctree.Node) (string, error) {
	var b strings.Builder
	for _, c := range doc.Content {
		n, err := r.block(c)
		if err != nil {
			return "", err
		}
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("rendering %s: %w", c.Type, err)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func (r *HTMLRenderer) block(n *doctree.Node) (*html.Node, error) {
	var el *html.Node
	switch n.Type {
	case doctree.NodeParagraph:
		el = element(tagName(n.Attrs, "p"), n.Attrs)
		return el, r.inline(el, n.Content, n.Attrs.Bool("preserveWhitespace"))

	case doctree.NodeHeading:
		level := n.Attrs.Int("level")
		if level < 1 || level > 6 {
			level = 1
		}
		el = element("h"+strconv.Itoa(level), nil)
		return el, r.inline(el, n.Content, false)

	case doctree.NodeCodeBlock:
		return r.codeBlock(n)

	case doctree.NodeBulletList:
		el = element(tagName(n.Attrs, "ul"), nil)
	case doctree.NodeOrderedList:
		el = element(tagName(n.Attrs, "ol"), nil)
		if start := n.Attrs.Int("order"); start > 1 {
			setAttr(el, "start", strconv.Itoa(start))
		}
	case doctree.NodeListItem:
		el = element(tagName(n.Attrs, "li"), nil)
		if n.Attrs.Bool("task") {
			setAttr(el, "data-task", "")
			if n.Attrs.Bool("checked") {
				setAttr(el, "data-task-checked", "")
			}
		}
	case doctree.NodeBlockQuote:
		el = element("blockquote", nil)
	case doctree.NodeTable:
		el = element("table", nil)
	case doctree.NodeTableHead:
		el = element("thead", nil)
	case doctree.NodeTableBody:
		el = element("tbody", nil)
	case doctree.NodeTableRow:
		el = element("tr", nil)
	case doctree.NodeTableHeadCell:
		el = element("th", n.Attrs)
	case doctree.NodeTableBodyCell:
		el = element("td", n.Attrs)
	case doctree.NodeDiv:
		el = element(tagName(n.Attrs, "div"), n.Attrs)

	case doctree.NodeThematicBreak:
		return element("hr", nil), nil
	case doctree.NodeHTMLComment:
		text := strings.TrimSuffix(strings.TrimPrefix(n.TextContent(), "<!--"), "-->")
		return &html.Node{Type: html.CommentNode, Data: text}, nil
	case doctree.NodeHTMLBlock:
		return &html.Node{Type: html.RawNode, Data: n.Attrs.String("html")}, nil

	case doctree.NodeText, doctree.NodeImage:
		// Inline content outside a paragraph, e.g. from a tag at block level.
		el = element("p", nil)
		return el, r.inline(el, []*doctree.Node{n}, false)

	default:
		el = element("div", nil)
		setAttr(el, "data-node-type", string(n.Type))
	}

	for _, c := range n.Content {
		if c.Type.IsInline() {
			if err := r.inline(el, []*doctree.Node{c}, false); err != nil {
				return nil, err
			}
			continue
		}
		child, err := r.block(c)
		if err != nil {
			return nil, err
		}
		el.AppendChild(child)
	}
	return el, nil
}

// inline appends text and images, each wrapped in its marks. Newlines become
// <br> unless whitespace is preserved.
func (r *HTMLRenderer) inline(parent *html.Node, content []*doctree.Node, preserve bool) error {
	for _, c := range content {
		switch c.Type {
		case doctree.NodeText:
			if preserve {
				parent.AppendChild(wrapMarks(textNode(c.Text), c.Marks))
				continue
			}
			for i, part := range strings.Split(c.Text, "\n") {
				if i > 0 {
					parent.AppendChild(element("br", nil))
				}
				if part != "" {
					parent.AppendChild(wrapMarks(textNode(part), c.Marks))
				}
			}
		case doctree.NodeImage:
			parent.AppendChild(wrapMarks(element("img", c.Attrs), c.Marks))
		default:
			child, err := r.block(c)
			if err != nil {
				return err
			}
			parent.AppendChild(child)
		}
	}
	return nil
}

func (r *HTMLRenderer) codeBlock(n *doctree.Node) (*html.Node, error) {
	code := n.TextContent()
	lang := n.Attrs.String("language")
	if r.highlight {
		out, err := highlight(code, lang, r.style)
		if err != nil {
			return nil, err
		}
		return &html.Node{Type: html.RawNode, Data: out}, nil
	}
	pre := element(tagName(n.Attrs, "pre"), nil)
	codeEl := element("code", nil)
	if lang != "" {
		setAttr(codeEl, "class", "language-"+lang)
	}
	codeEl.AppendChild(textNode(code))
	pre.AppendChild(codeEl)
	return pre, nil
}

// highlight renders code with inline chroma styles.
func highlight(code, lang, styleName string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenizing code block: %w", err)
	}
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	if err := formatter.Format(&b, styles.Get(styleName), it); err != nil {
		return "", fmt.Errorf("highlighting code block: %w", err)
	}
	return b.String(), nil
}

// wrapMarks nests n in elements for marks, the first mark outermost.
func wrapMarks(n *html.Node, marks []doctree.Mark) *html.Node {
	for i := len(marks) - 1; i >= 0; i-- {
		el := markElement(marks[i])
		el.AppendChild(n)
		n = el
	}
	return n
}

func markElement(m doctree.Mark) *html.Node {
	switch m.Type {
	case doctree.MarkStrong:
		return element(tagName(m.Attrs, "strong"), m.Attrs)
	case doctree.MarkEmph:
		return element(tagName(m.Attrs, "em"), m.Attrs)
	case doctree.MarkStrike:
		return element(tagName(m.Attrs, "del"), m.Attrs)
	case doctree.MarkCode:
		return element(tagName(m.Attrs, "code"), m.Attrs)
	case doctree.MarkLink:
		el := element(tagName(m.Attrs, "a"), m.Attrs)
		if href := m.Attrs.String("linkUrl"); href != "" {
			setAttr(el, "href", href)
		}
		return el
	case doctree.MarkSpan:
		return element(tagName(m.Attrs, "span"), m.Attrs)
	}
	el := element("span", nil)
	setAttr(el, "data-mark-type", string(m.Type))
	return el
}

// tagName returns the tag name recorded in rawHTML, or def.
func tagName(attrs doctree.Attrs, def string) string {
	if name := attrs.String("rawHTML"); name != "" {
		return name
	}
	return def
}

// element creates an element carrying the non-empty string attributes of
// attrs in name order.
func element(tag string, attrs doctree.Attrs) *html.Node {
	el := &html.Node{Type: html.ElementNode, Data: tag}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if !internalAttrs[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := attrs.String(k); v != "" {
			setAttr(el, k, v)
		}
	}
	return el
}

func setAttr(el *html.Node, key, val string) {
	el.Attr = append(el.Attr, html.Attribute{Key: key, Val: val})
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
