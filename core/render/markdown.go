package render

import (
	"fmt"

	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/doctree"
	"github.com/gaurav-prasanna/richtree/core/normalize"
)

// MarkdownRenderer writes a document back as Markdown: the tree is rendered
// to HTML first, then normalized, so embedded tags come out as Markdown
// wherever Markdown has an equivalent.
type MarkdownRenderer struct {
	html       *HTMLRenderer
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		html:       NewHTMLRenderer(),
		normalizer: normalize.New(),
	}
}

// Render converts the document into Markdown bytes.
func (r *MarkdownRenderer) Render(doc *doctree.Node, meta core.DocumentMetadata) ([]byte, error) {
	fragment, err := r.html.Fragment(doc)
	if err != nil {
		return nil, err
	}
	markdown, err := r.normalizer.Normalize(fragment)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
