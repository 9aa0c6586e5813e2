// Package convert turns a markdown syntax tree, including the raw tags the
// markdown parser left in it, into a rich document tree.
//
// Raw tags are dispatched by lower-cased name to a handler for their family
// (div, p, span, b/strong, i/em, s/del, code, a, img, hr, br, pre, ul/ol, li).
// Handlers drive a doctree.Builder with open/close calls, so a document whose
// tags do not pair up fails at the end of the conversion instead of producing
// a malformed tree.
package convert

import (
	"errors"
	"fmt"
	"io"

	"github.com/gaurav-prasanna/richtree/core/doctree"
	"github.com/gaurav-prasanna/richtree/core/fragment"
	"github.com/gaurav-prasanna/richtree/core/mdast"
	"github.com/gaurav-prasanna/richtree/core/sanitize"
	"github.com/sirupsen/logrus"
)

// Handler converts one tag event. openTagName is the tag name as written in
// the source for a start tag and "" for an end tag.
type Handler func(st *State, n *mdast.Node, openTagName string) error

// UnsupportedTagError is returned in strict mode for a tag without a handler.
type UnsupportedTagError struct {
	Tag string
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("unsupported tag <%s>", e.Tag)
}

// State is what a handler works on: the builder of the document being
// converted plus access to sanitized attributes. A State lives for one
// conversion.
type State struct {
	*doctree.Builder
	sanitizer fragment.Cleaner
	log       logrus.FieldLogger
}

// Element sanitizes literal and returns its root element.
func (st *State) Element(literal string) (*fragment.Element, error) {
	return fragment.Parse(st.sanitizer.Sanitize(literal))
}

// Attributes returns the named attributes of the sanitized literal, "" for
// missing ones.
func (st *State) Attributes(literal string, names ...string) ([]string, error) {
	return fragment.ExtractAttributes(st.sanitizer, literal, names...)
}

// Logger returns the conversion logger.
func (st *State) Logger() logrus.FieldLogger {
	return st.log
}

// Option configures a Converter.
type Option func(*Converter)

// WithSanitizer sets the sanitizer applied before attributes are read.
func WithSanitizer(s fragment.Cleaner) Option {
	return func(c *Converter) {
		c.sanitizer = s
	}
}

// WithLogger sets the logger; conversions log at debug level only.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Converter) {
		c.log = l
	}
}

// WithStrict makes unknown tags fail with UnsupportedTagError instead of
// being ignored.
func WithStrict(strict bool) Option {
	return func(c *Converter) {
		c.strict = strict
	}
}

// WithHandlers adds handlers keyed by comma-separated tag names, e.g.
// "u, ins". They replace built-in handlers except those of div, p and span.
func WithHandlers(handlers map[string]Handler) Option {
	return func(c *Converter) {
		if c.custom == nil {
			c.custom = map[string]Handler{}
		}
		for k, h := range handlers {
			c.custom[k] = h
		}
	}
}

// Converter converts markdown trees to documents. It is immutable after New
// and may be used from several goroutines.
type Converter struct {
	table     table
	custom    map[string]Handler
	sanitizer fragment.Cleaner
	log       logrus.FieldLogger
	strict    bool
}

// New creates a Converter. Without options it uses the default sanitizer,
// ignores unknown tags and logs nothing.
func New(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	if c.sanitizer == nil {
		c.sanitizer = sanitize.Default()
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	c.table = newTable(c.custom)
	return c
}

// Convert converts the tree rooted at root. On error no document is returned.
func (c *Converter) Convert(root *mdast.Node) (*doctree.Node, error) {
	if root == nil {
		return nil, errors.New("converting document: nil tree")
	}
	st := &State{
		Builder:   doctree.NewBuilder(),
		sanitizer: c.sanitizer,
		log:       c.log,
	}
	w := &walker{table: c.table, strict: c.strict, st: st}
	if err := mdast.Walk(root, w.visit); err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}
	doc, err := st.Finish()
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}
	return doc, nil
}
