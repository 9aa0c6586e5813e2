// Package normalize implements the Normalizer interface.
// It converts HTML into Markdown. Imported HTML pages go through it before
// parsing, and the Markdown renderer uses it on re-serialized documents.
package normalize

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown with
// the table and strikethrough plugins.
type MarkdownNormalizer struct {
	conv   *converter.Converter
	domain string
}

// Option configures a MarkdownNormalizer.
type Option func(*MarkdownNormalizer)

// WithDomain resolves relative links and images against domain.
func WithDomain(domain string) Option {
	return func(n *MarkdownNormalizer) {
		n.domain = domain
	}
}

// New creates a MarkdownNormalizer.
func New(opts ...Option) *MarkdownNormalizer {
	n := &MarkdownNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				strikethrough.NewStrikethroughPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts an HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if n.domain != "" {
		opts = append(opts, converter.WithDomain(n.domain))
	}
	markdown, err := n.conv.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
