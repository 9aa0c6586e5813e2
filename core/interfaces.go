// Package core defines the pipeline interfaces for richtree.
// Each stage of the pipeline is a small interface with one implementation
// package under core/.
package core

import (
	"context"

	"github.com/gaurav-prasanna/richtree/core/doctree"
	"github.com/gaurav-prasanna/richtree/core/mdast"
)

// Media types a Source can carry.
const (
	MediaMarkdown = "markdown"
	MediaHTML     = "html"
)

// Source is a loaded input document.
type Source struct {
	// Location is the path or URL the document was loaded from.
	Location  string
	MediaType string
	Body      []byte
}

// DocumentMetadata describes where a document came from.
type DocumentMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Section is a heading and the text up to the next heading.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the document.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a link mark found in the document.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocumentContent holds the plain text of a document.
type DocumentContent struct {
	Text     string    `json:"text"`
	Sections []Section `json:"sections"`
}

// DocumentStructure counts what the converted document is made of.
type DocumentStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
	Images     int       `json:"images"`
	// RawTags counts nodes and marked text runs converted from embedded tags.
	RawTags int `json:"raw_tags"`
}

// DocumentJSON is the complete JSON output for a single document.
type DocumentJSON struct {
	Metadata  DocumentMetadata  `json:"metadata"`
	Content   DocumentContent   `json:"content"`
	Structure DocumentStructure `json:"structure"`
	Document  *doctree.Node     `json:"document"`
}

// Loader reads a document from a path or URL.
type Loader interface {
	Load(ctx context.Context, location string) (*Source, error)
}

// Extractor pulls the main content out of a full HTML page.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Parser parses Markdown into a syntax tree.
type Parser interface {
	Parse(source []byte) (*mdast.Node, error)
}

// Converter turns a Markdown syntax tree into a document tree.
type Converter interface {
	Convert(root *mdast.Node) (*doctree.Node, error)
}

// Renderer converts a document tree (and metadata) into a final output format.
type Renderer interface {
	Render(doc *doctree.Node, meta DocumentMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
