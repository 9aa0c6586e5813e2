package render

import (
	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/doctree"
)

func n(t doctree.NodeType, attrs doctree.Attrs, content ...*doctree.Node) *doctree.Node {
	return &doctree.Node{Type: t, Attrs: attrs, Content: content}
}

func txt(s string, marks ...doctree.Mark) *doctree.Node {
	return &doctree.Node{Type: doctree.NodeText, Text: s, Marks: marks}
}

func para(content ...*doctree.Node) *doctree.Node {
	return n(doctree.NodeParagraph, nil, content...)
}

func heading(level int, s string) *doctree.Node {
	return n(doctree.NodeHeading, doctree.Attrs{"level": level}, txt(s))
}

func doc(content ...*doctree.Node) *doctree.Node {
	return n(doctree.NodeDoc, nil, content...)
}

// sampleDoc exercises every block type the renderers handle.
func sampleDoc() *doctree.Node {
	link := doctree.Mark{Type: doctree.MarkLink, Attrs: doctree.Attrs{"linkUrl": "https://go.dev"}}
	bold := doctree.Mark{Type: doctree.MarkStrong, Attrs: doctree.Attrs{"rawHTML": "b"}}
	return doc(
		heading(1, "Intro"),
		para(txt("See "), txt("docs", link), txt(" here", link, bold), txt(".")),
		n(doctree.NodeCodeBlock, doctree.Attrs{"language": "go"}, txt("x := 1")),
		heading(2, "Usage"),
		n(doctree.NodeBulletList, nil,
			n(doctree.NodeListItem, nil, para(txt("one"))),
			n(doctree.NodeListItem, doctree.Attrs{"task": true, "checked": true}, para(txt("two"))),
		),
		n(doctree.NodeTable, nil,
			n(doctree.NodeTableHead, nil, n(doctree.NodeTableRow, nil,
				n(doctree.NodeTableHeadCell, doctree.Attrs{"align": "center"}, para(txt("h"))))),
			n(doctree.NodeTableBody, nil, n(doctree.NodeTableRow, nil,
				n(doctree.NodeTableBodyCell, nil, para(txt("c"))))),
		),
		n(doctree.NodeDiv, doctree.Attrs{"rawHTML": "div", "class": "note", "textAlign": "center"}, para(txt("boxed"))),
		para(txt("pic"), n(doctree.NodeImage, doctree.Attrs{"src": "a.png", "alt": "A"})),
		n(doctree.NodeThematicBreak, nil),
	)
}

func sampleMeta() core.DocumentMetadata {
	return core.DocumentMetadata{
		Source:      "docs/readme.md",
		Title:       "Intro",
		ConvertedAt: "2026-01-01T00:00:00Z",
	}
}
