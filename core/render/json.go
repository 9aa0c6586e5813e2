// Package render: JSON renderer.
// Writes the document tree together with its plain text, heading sections
// and structural counts, all read off the tree rather than re-parsed.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/doctree"
)

// JSONRenderer produces structured JSON output from a document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the document and metadata into the JSON structure.
func (r *JSONRenderer) Render(doc *doctree.Node, meta core.DocumentMetadata) ([]byte, error) {
	page := core.DocumentJSON{
		Metadata: meta,
		Content: core.DocumentContent{
			Text:     PlainText(doc),
			Sections: buildSections(doc),
		},
		Structure: Structure(doc),
		Document:  doc,
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// PlainText returns the text of the top-level blocks separated by blank lines.
func PlainText(doc *doctree.Node) string {
	parts := make([]string, 0, len(doc.Content))
	for _, c := range doc.Content {
		if t := strings.TrimSpace(blockText(c)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// blockText is the text of a block with nested blocks on their own lines.
func blockText(n *doctree.Node) string {
	switch n.Type {
	case doctree.NodeText:
		return n.Text
	case doctree.NodeHTMLComment, doctree.NodeHTMLBlock:
		return ""
	}
	var b strings.Builder
	for i, c := range n.Content {
		if i > 0 && !c.Type.IsInline() {
			b.WriteByte('\n')
		}
		b.WriteString(blockText(c))
	}
	return b.String()
}

// Title returns the text of the first heading, or "".
func Title(doc *doctree.Node) string {
	title := ""
	doctree.Walk(doc, func(n *doctree.Node) bool {
		if title != "" {
			return false
		}
		if n.Type == doctree.NodeHeading {
			title = strings.TrimSpace(n.TextContent())
			return false
		}
		return true
	})
	return title
}

// buildSections splits the top-level blocks at headings.
func buildSections(doc *doctree.Node) []core.Section {
	var sections []core.Section
	var current *core.Section
	var lines []string

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(lines, "\n\n"))
			sections = append(sections, *current)
		}
	}
	for _, c := range doc.Content {
		if c.Type == doctree.NodeHeading {
			flush()
			current = &core.Section{
				Heading: strings.TrimSpace(c.TextContent()),
				Level:   c.Attrs.Int("level"),
			}
			lines = nil
			continue
		}
		if current != nil {
			if t := strings.TrimSpace(blockText(c)); t != "" {
				lines = append(lines, t)
			}
		}
	}
	flush()
	return sections
}

// Structure collects headings, links and element counts from the document.
func Structure(doc *doctree.Node) core.DocumentStructure {
	s := core.DocumentStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}
	var lastLink *doctree.Mark

	doctree.Walk(doc, func(n *doctree.Node) bool {
		if n.Attrs != nil {
			if _, ok := n.Attrs["rawHTML"]; ok {
				s.RawTags++
			}
		}
		switch n.Type {
		case doctree.NodeHeading:
			s.Headings = append(s.Headings, core.Heading{
				Level: n.Attrs.Int("level"),
				Text:  strings.TrimSpace(n.TextContent()),
			})
		case doctree.NodeCodeBlock:
			s.CodeBlocks++
		case doctree.NodeTable:
			s.Tables++
		case doctree.NodeBulletList, doctree.NodeOrderedList:
			s.Lists++
		case doctree.NodeImage:
			s.Images++
		case doctree.NodeText:
			link := linkMark(n)
			switch {
			case link == nil:
			case lastLink != nil && link.Attrs.String("linkUrl") == lastLink.Attrs.String("linkUrl"):
				// Same link continued with different inline marks.
				s.Links[len(s.Links)-1].Text += n.Text
			default:
				s.Links = append(s.Links, core.Link{Text: n.Text, Href: link.Attrs.String("linkUrl")})
			}
			lastLink = link
			for _, m := range n.Marks {
				if _, ok := m.Attrs["rawHTML"]; ok {
					s.RawTags++
				}
			}
		}
		return true
	})
	return s
}

func linkMark(n *doctree.Node) *doctree.Mark {
	for i := range n.Marks {
		if n.Marks[i].Type == doctree.MarkLink {
			return &n.Marks[i]
		}
	}
	return nil
}
