package fragment

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// rootElement selects the first element the fragment produced, i.e. the
// first child of the container the markup was parsed into.
var rootElement = cascadia.MustCompile("body > *")

// Element is the root element of a parsed fragment. An Element for markup
// that produced no element (an end tag, or a tag the sanitizer removed) is
// empty: it has no name and no attributes.
type Element struct {
	sel *goquery.Selection
}

// Parse parses markup as the content of a container and returns its first element.
func Parse(markup string) (*Element, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return &Element{sel: doc.FindMatcher(rootElement).First()}, nil
}

// Exists reports whether the fragment produced an element.
func (e *Element) Exists() bool {
	return e.sel.Length() > 0
}

// Name returns the lower-cased element name, or "" for an empty Element.
func (e *Element) Name() string {
	if !e.Exists() {
		return ""
	}
	return goquery.NodeName(e.sel)
}

// Attr returns the value of the named attribute and whether it is present.
// The style attribute is returned verbatim.
func (e *Element) Attr(name string) (string, bool) {
	if !e.Exists() {
		return "", false
	}
	return dom.GetAttribute(e.sel.Get(0), name)
}

// AttrOrNil returns the attribute value, or nil when the attribute is absent.
func (e *Element) AttrOrNil(name string) any {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return nil
}

// Attrs returns every attribute of the element.
func (e *Element) Attrs() map[string]string {
	out := map[string]string{}
	if !e.Exists() {
		return out
	}
	for _, a := range e.sel.Get(0).Attr {
		out[a.Key] = a.Val
	}
	return out
}

// FirstChildText descends one more level, from the element to its first
// child, and returns that child's text content.
func (e *Element) FirstChildText() string {
	return e.sel.Contents().First().Text()
}

// Cleaner is the sanitizer boundary used before attributes are read.
type Cleaner interface {
	Sanitize(markup string) string
}

// ExtractAttributes sanitizes the fragment, parses it and returns the values
// of the requested attributes in order. Missing attributes are "".
func ExtractAttributes(c Cleaner, fragment string, names ...string) ([]string, error) {
	el, err := Parse(c.Sanitize(fragment))
	if err != nil {
		return nil, err
	}
	values := make([]string, len(names))
	for i, name := range names {
		values[i], _ = el.Attr(name)
	}
	return values, nil
}
