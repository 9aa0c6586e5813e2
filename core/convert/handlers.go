package convert

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/richtree/core/doctree"
	"github.com/gaurav-prasanna/richtree/core/fragment"
	"github.com/gaurav-prasanna/richtree/core/mdast"
)

var (
	reTask        = regexp.MustCompile(`data-task`)
	reTaskChecked = regexp.MustCompile(`data-task-checked`)
)

// preserve serves div, p and span: every sanitized attribute is copied, then
// class and style (cleaned for blocks), and rawHTML.
func preserve(f Family) Handler {
	return func(st *State, n *mdast.Node, openTagName string) error {
		if openTagName == "" {
			switch f {
			case FamilySpan:
				st.CloseMark(doctree.MarkSpan)
				return nil
			case FamilyParagraph:
				return closeTagged(st, doctree.NodeParagraph)
			default:
				return closeTagged(st, doctree.NodeDiv)
			}
		}

		el, err := st.Element(n.Literal)
		if err != nil {
			return err
		}
		attrs := doctree.Attrs{}
		for k, v := range el.Attrs() {
			attrs[k] = v
		}
		attrs["class"] = el.AttrOrNil("class")

		if f == FamilySpan {
			attrs["style"] = el.AttrOrNil("style")
			attrs["rawHTML"] = openTagName
			st.OpenMark(doctree.Mark{Type: doctree.MarkSpan, Attrs: attrs})
			return nil
		}

		attrs["style"] = nil
		attrs["textAlign"] = nil
		if style, ok := el.Attr("style"); ok && style != "" {
			attrs["style"] = fragment.CleanStyle(style)
			if align := fragment.TextAlign(style); align != "" {
				attrs["textAlign"] = align
			}
		}
		attrs["rawHTML"] = openTagName

		if f == FamilyParagraph {
			attrs["preserveWhitespace"] = true
			st.OpenNode(doctree.NodeParagraph, attrs)
			return nil
		}
		st.OpenNode(doctree.NodeDiv, attrs)
		return nil
	}
}

// closeTagged closes the top node if a tag of type t opened it. Stray end
// tags are ignored so they cannot close structure built from markdown.
func closeTagged(st *State, t doctree.NodeType) error {
	if _, tagged := st.TopAttrs()["rawHTML"]; st.Top() != t || !tagged {
		st.Logger().WithField("top", st.Top()).Debugf("stray </%s> ignored", t)
		return nil
	}
	_, err := st.CloseNode()
	return err
}

func symmetricMark(t doctree.MarkType) Handler {
	return func(st *State, _ *mdast.Node, openTagName string) error {
		if openTagName == "" {
			st.CloseMark(t)
			return nil
		}
		st.OpenMark(doctree.Mark{Type: t, Attrs: doctree.Attrs{"rawHTML": openTagName}})
		return nil
	}
}

func strongMark(st *State, n *mdast.Node, openTagName string) error {
	if openTagName == "" {
		st.CloseMark(doctree.MarkStrong)
		return nil
	}
	el, err := st.Element(n.Literal)
	if err != nil {
		return err
	}
	st.OpenMark(doctree.Mark{Type: doctree.MarkStrong, Attrs: doctree.Attrs{
		"rawHTML": openTagName,
		"style":   el.AttrOrNil("style"),
	}})
	return nil
}

func linkMark(st *State, n *mdast.Node, openTagName string) error {
	if openTagName == "" {
		st.CloseMark(doctree.MarkLink)
		return nil
	}
	values, err := st.Attributes(n.Literal, "href")
	if err != nil {
		return err
	}
	st.OpenMark(doctree.Mark{Type: doctree.MarkLink, Attrs: doctree.Attrs{
		"linkUrl": values[0],
		"rawHTML": openTagName,
	}})
	return nil
}

// image adds an image leaf; end tags are ignored.
func image(st *State, n *mdast.Node, openTagName string) error {
	if openTagName == "" {
		return nil
	}
	el, err := st.Element(n.Literal)
	if err != nil {
		return err
	}
	src, _ := el.Attr("src")
	alt, _ := el.Attr("alt")
	attrs := doctree.Attrs{"src": src, "alt": alt, "rawHTML": openTagName}
	for k, v := range el.Attrs() {
		if k != "src" && k != "alt" {
			attrs[k] = v
		}
	}
	st.AddNode(doctree.NodeImage, attrs)
	return nil
}

func rule(st *State, _ *mdast.Node, openTagName string) error {
	if openTagName == "" {
		return nil
	}
	st.AddNode(doctree.NodeThematicBreak, doctree.Attrs{"rawHTML": openTagName})
	return nil
}

// lineBreak adds a newline. A break written on its own line inside a
// paragraph, i.e. between two soft breaks, also splits the paragraph. A break
// directly in the document, or in any container that holds only blocks, has
// nothing to break and is dropped.
func lineBreak(st *State, n *mdast.Node, _ string) error {
	if !acceptsText(st.Top()) {
		st.Logger().WithField("top", st.Top()).Debug("line break outside text ignored")
		return nil
	}
	st.AddText("\n")
	if n.Parent == nil || n.Parent.Type != mdast.Paragraph {
		return nil
	}
	if isSoftbreak(n.Prev) && isSoftbreak(n.Next) {
		if _, err := st.CloseNode(); err != nil {
			return err
		}
		st.OpenNode(doctree.NodeParagraph, nil)
	}
	return nil
}

// preformatted turns a whole <pre> fragment into a closed code block. The
// matching end tag, if it arrives as its own event, is ignored.
func preformatted(st *State, n *mdast.Node, openTagName string) error {
	if openTagName == "" {
		return nil
	}
	el, err := st.Element(n.Literal)
	if err != nil {
		return err
	}
	if el.Name() != "pre" {
		st.Logger().WithField("markup", n.Literal).Debug("pre removed by sanitizer")
		return nil
	}
	st.OpenNode(doctree.NodeCodeBlock, doctree.Attrs{"rawHTML": openTagName})
	st.AddText(strings.TrimSuffix(el.FirstChildText(), "\n"))
	_, err = st.CloseNode()
	return err
}

// list handles ul and ol written inside a table cell. Elsewhere markdown
// lists carry the structure and the tags are ignored.
func list(st *State, n *mdast.Node, openTagName string) error {
	if !inTableCell(n) {
		return nil
	}
	if openTagName != "" {
		if n.Prev != nil && !isListTag(n.Prev) {
			if _, err := st.CloseNode(); err != nil {
				return err
			}
		}
		t := doctree.NodeOrderedList
		if strings.EqualFold(openTagName, "ul") {
			t = doctree.NodeBulletList
		}
		st.OpenNode(t, doctree.Attrs{"rawHTML": openTagName})
		return nil
	}

	if _, err := st.CloseNode(); err != nil {
		return err
	}
	if n.Next != nil && !isListTag(n.Next) {
		st.OpenNode(doctree.NodeParagraph, nil)
	}
	return nil
}

// listItem handles li inside a table cell. Inline content following the tag
// goes into a paragraph opened here and closed by the end tag.
func listItem(st *State, n *mdast.Node, openTagName string) error {
	if !inTableCell(n) {
		return nil
	}
	if n.Prev != nil && !isListTag(n.Prev) {
		if _, err := st.CloseNode(); err != nil {
			return err
		}
	}
	if openTagName == "" {
		_, err := st.CloseNode()
		return err
	}

	st.OpenNode(doctree.NodeListItem, doctree.Attrs{
		"rawHTML": openTagName,
		"task":    reTask.MatchString(n.Literal),
		"checked": reTaskChecked.MatchString(n.Literal),
	})
	if n.Next != nil && !isListTag(n.Next) {
		st.OpenNode(doctree.NodeParagraph, nil)
	}
	return nil
}

// acceptsText reports whether nodes of type t can hold inline content.
func acceptsText(t doctree.NodeType) bool {
	switch t {
	case doctree.NodeDoc, doctree.NodeBulletList, doctree.NodeOrderedList,
		doctree.NodeTable, doctree.NodeTableHead, doctree.NodeTableBody, doctree.NodeTableRow:
		return false
	}
	return true
}

func inTableCell(n *mdast.Node) bool {
	return n.Parent != nil && n.Parent.Type == mdast.TableCell
}

func isSoftbreak(n *mdast.Node) bool {
	return n != nil && n.Type == mdast.Softbreak
}

// isListTag reports whether n is a ul, ol or li tag.
func isListTag(n *mdast.Node) bool {
	if n.Type != mdast.HTMLInline {
		return false
	}
	ev, err := fragment.Classify(n.Literal)
	if err != nil {
		return false
	}
	switch ev.TagName {
	case "ul", "ol", "li":
		return true
	}
	return false
}
