package convert

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/richtree/core/doctree"
	"github.com/gaurav-prasanna/richtree/core/fragment"
	"github.com/gaurav-prasanna/richtree/core/mdast"
	"github.com/sirupsen/logrus"
)

// walker feeds markdown nodes to the builder in document order.
type walker struct {
	table  table
	strict bool
	st     *State
}

func (w *walker) visit(n *mdast.Node, entering bool) (mdast.WalkStatus, error) {
	st := w.st
	var err error

	switch n.Type {
	case mdast.Document:

	case mdast.Paragraph:
		err = w.container(doctree.NodeParagraph, nil, entering)

	case mdast.Heading:
		err = w.container(doctree.NodeHeading, doctree.Attrs{"level": n.Level}, entering)

	case mdast.Text:
		if entering {
			st.AddText(n.Literal)
		}

	case mdast.Softbreak, mdast.Linebreak:
		if entering {
			st.AddText("\n")
		}

	case mdast.Emph:
		w.mark(doctree.Mark{Type: doctree.MarkEmph}, entering)

	case mdast.Strong:
		w.mark(doctree.Mark{Type: doctree.MarkStrong}, entering)

	case mdast.Strike:
		w.mark(doctree.Mark{Type: doctree.MarkStrike}, entering)

	case mdast.Code:
		if entering {
			st.OpenMark(doctree.Mark{Type: doctree.MarkCode})
			st.AddText(n.Literal)
			st.CloseMark(doctree.MarkCode)
		}

	case mdast.Link:
		w.mark(doctree.Mark{Type: doctree.MarkLink, Attrs: doctree.Attrs{
			"linkUrl": n.Destination,
			"title":   orNil(n.Title),
		}}, entering)

	case mdast.Image:
		if entering {
			st.AddNode(doctree.NodeImage, doctree.Attrs{"src": n.Destination, "alt": n.Literal})
		}

	case mdast.CodeBlock:
		if entering {
			st.OpenNode(doctree.NodeCodeBlock, doctree.Attrs{"language": orNil(n.Info)})
			st.AddText(strings.TrimSuffix(n.Literal, "\n"))
			_, err = st.CloseNode()
		}

	case mdast.HTMLBlock:
		if entering {
			err = w.htmlBlock(n)
		}

	case mdast.HTMLInline:
		if entering {
			err = w.htmlInline(n)
		}

	case mdast.BlockQuote:
		err = w.container(doctree.NodeBlockQuote, nil, entering)

	case mdast.List:
		if n.Ordered {
			err = w.container(doctree.NodeOrderedList, doctree.Attrs{"order": n.Start}, entering)
		} else {
			err = w.container(doctree.NodeBulletList, nil, entering)
		}

	case mdast.Item:
		err = w.container(doctree.NodeListItem, doctree.Attrs{"task": n.Task, "checked": n.Checked}, entering)

	case mdast.ThematicBreak:
		if entering {
			st.AddNode(doctree.NodeThematicBreak, nil)
		}

	case mdast.Table:
		err = w.container(doctree.NodeTable, nil, entering)

	case mdast.TableHead:
		err = w.container(doctree.NodeTableHead, nil, entering)

	case mdast.TableBody:
		err = w.container(doctree.NodeTableBody, nil, entering)

	case mdast.TableRow:
		err = w.container(doctree.NodeTableRow, nil, entering)

	case mdast.TableCell:
		err = w.tableCell(n, entering)

	default:
		st.Logger().WithField("node", n.Type).Debug("skipping markdown node")
	}

	if err != nil {
		return mdast.WalkStop, err
	}
	return mdast.WalkContinue, nil
}

func (w *walker) container(t doctree.NodeType, attrs doctree.Attrs, entering bool) error {
	if entering {
		w.st.OpenNode(t, attrs)
		return nil
	}
	_, err := w.st.CloseNode()
	return err
}

func (w *walker) mark(m doctree.Mark, entering bool) {
	if entering {
		w.st.OpenMark(m)
		return
	}
	w.st.CloseMark(m.Type)
}

// tableCell wraps leading and trailing inline content of a cell in a
// paragraph. The list handlers close and reopen it around list tags.
func (w *walker) tableCell(n *mdast.Node, entering bool) error {
	if entering {
		t := doctree.NodeTableBodyCell
		if n.Parent != nil && n.Parent.Parent != nil && n.Parent.Parent.Type == mdast.TableHead {
			t = doctree.NodeTableHeadCell
		}
		w.st.OpenNode(t, doctree.Attrs{"align": orNil(n.Align)})
		if startsParagraph(n.FirstChild) {
			w.st.OpenNode(doctree.NodeParagraph, nil)
		}
		return nil
	}
	if startsParagraph(n.LastChild) {
		if _, err := w.st.CloseNode(); err != nil {
			return err
		}
	}
	_, err := w.st.CloseNode()
	return err
}

// startsParagraph reports whether n is inline content that needs a paragraph
// around it inside a table cell.
func startsParagraph(n *mdast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case mdast.Text, mdast.Softbreak, mdast.Linebreak, mdast.Emph, mdast.Strong,
		mdast.Strike, mdast.Code, mdast.Link, mdast.Image:
		return true
	case mdast.HTMLInline:
		return !isListTag(n)
	}
	return false
}

// htmlInline dispatches one raw tag. Comments and other non-tag markup are
// skipped; anything else that is not a tag aborts the conversion.
func (w *walker) htmlInline(n *mdast.Node) error {
	if fragment.IsNonTagMarkup(n.Literal) {
		w.st.Logger().WithField("markup", n.Literal).Debug("skipping non-tag markup")
		return nil
	}
	ev, err := fragment.Classify(n.Literal)
	if err != nil {
		return err
	}
	return w.dispatch(n, ev)
}

// htmlBlock converts a block of raw markup: comments become htmlComment
// nodes, pre blocks and single tags are dispatched like inline tags, and
// anything else is kept sanitized in an htmlBlock leaf.
func (w *walker) htmlBlock(n *mdast.Node) error {
	literal := strings.TrimSpace(n.Literal)
	if strings.HasPrefix(literal, "<!--") {
		w.st.OpenNode(doctree.NodeHTMLComment, nil)
		w.st.AddText(literal)
		_, err := w.st.CloseNode()
		return err
	}

	if !fragment.IsNonTagMarkup(literal) {
		ev, err := fragment.Classify(literal)
		if err == nil && (ev.TagName == "pre" || ev.IsSingleTag()) {
			return w.dispatch(n, ev)
		}
	}

	w.st.Logger().WithField("markup", literal).Debug("keeping markup as html block")
	w.st.AddNode(doctree.NodeHTMLBlock, doctree.Attrs{"html": w.st.sanitizer.Sanitize(literal)})
	return nil
}

func (w *walker) dispatch(n *mdast.Node, ev fragment.TagEvent) error {
	log := w.st.Logger().WithFields(logrus.Fields{"tag": ev.TagName, "closing": ev.Closing})
	e, ok := w.table.lookup(ev.TagName)
	if !ok {
		if w.strict {
			return &UnsupportedTagError{Tag: ev.TagName}
		}
		log.Debug("ignoring unsupported tag")
		return nil
	}
	log.WithField("family", e.family).Debug("dispatching tag")

	openTagName := ev.RawName
	if ev.Closing {
		openTagName = ""
	}
	if err := e.handler(w.st, n, openTagName); err != nil {
		return fmt.Errorf("converting %s: %w", ev.TagText, err)
	}
	// <span/> and the like open and close at once; void elements have no end.
	if ev.SelfClosing && !ev.IsVoid() {
		if err := e.handler(w.st, n, ""); err != nil {
			return fmt.Errorf("converting %s: %w", ev.TagText, err)
		}
	}
	return nil
}

// orNil maps "" to a null attribute.
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
