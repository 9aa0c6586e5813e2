// Package fragment reads single-tag markup fragments: it classifies a fragment
// as an opening or closing tag and reads attributes off its sanitized element.
package fragment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedFragment matches every MalformedFragmentError under errors.Is.
var ErrMalformedFragment = errors.New("malformed markup fragment")

// MalformedFragmentError is returned when a fragment is not a single start or end tag.
type MalformedFragmentError struct {
	Fragment string
}

func (e *MalformedFragmentError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMalformedFragment, e.Fragment)
}

func (e *MalformedFragmentError) Is(target error) bool {
	return target == ErrMalformedFragment
}

const (
	tagName        = `[A-Za-z][A-Za-z0-9-]*`
	attributeName  = `[a-zA-Z_:][a-zA-Z0-9:._-]*`
	attributeValue = `(?:[^"'=<>` + "`" + `\x00-\x20]+|'[^']*'|"[^"]*")`
	attribute      = `(?:\s+` + attributeName + `(?:\s*=\s*` + attributeValue + `)?)`
	openTag        = `<(` + tagName + `)` + attribute + `*\s*(/?)>`
	closeTag       = `</(` + tagName + `)\s*>`
)

// tagPattern matches a tag at the start of a fragment. Submatches: 1 open
// name, 2 self-closing slash, 3 close name.
var tagPattern = regexp.MustCompile(`^(?:` + openTag + `|` + closeTag + `)`)

// voidElements never have a closing event.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// TagEvent is a classified fragment.
type TagEvent struct {
	// TagName is the lower-cased tag name used for dispatch.
	TagName string
	// RawName is the tag name as written, e.g. "DIV".
	RawName string
	// Closing is set for end tags.
	Closing bool
	// SelfClosing is set for void elements and tags written with "/>".
	SelfClosing bool
	// Literal is the complete fragment.
	Literal string
	// TagText is the part of Literal matched as the tag.
	TagText string
}

// Classify parses the leading tag of a fragment. Fragments that do not start
// with a start or end tag yield a MalformedFragmentError.
func Classify(literal string) (TagEvent, error) {
	m := tagPattern.FindStringSubmatch(literal)
	if m == nil {
		return TagEvent{}, &MalformedFragmentError{Fragment: literal}
	}

	ev := TagEvent{Literal: literal, TagText: m[0]}
	if m[1] != "" {
		ev.RawName = m[1]
		ev.TagName = strings.ToLower(m[1])
		ev.SelfClosing = m[2] == "/" || voidElements[ev.TagName]
	} else {
		ev.RawName = m[3]
		ev.TagName = strings.ToLower(m[3])
		ev.Closing = true
	}
	return ev, nil
}

// IsVoid reports whether the tag names a void element.
func (ev TagEvent) IsVoid() bool {
	return voidElements[ev.TagName]
}

// IsSingleTag reports whether the fragment consists of exactly its leading
// tag, surrounding whitespace aside.
func (ev TagEvent) IsSingleTag() bool {
	return strings.TrimSpace(ev.Literal) == ev.TagText
}

// IsNonTagMarkup reports whether a raw markup token is a comment, processing
// instruction, declaration or CDATA section rather than a tag.
func IsNonTagMarkup(literal string) bool {
	return strings.HasPrefix(literal, "<!") || strings.HasPrefix(literal, "<?")
}
