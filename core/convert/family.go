package convert

import (
	"strings"

	"github.com/gaurav-prasanna/richtree/core/doctree"
)

// Family is a group of tag names converted the same way.
type Family int

// Tag families.
const (
	FamilyNone Family = iota
	FamilyDiv
	FamilyParagraph
	FamilySpan
	FamilyStrong
	FamilyEmph
	FamilyStrike
	FamilyCode
	FamilyLink
	FamilyImage
	FamilyRule
	FamilyBreak
	FamilyPre
	FamilyList
	FamilyListItem
	// FamilyCustom marks a tag served by a handler passed to WithHandlers.
	FamilyCustom
)

var familyNames = [...]string{
	FamilyNone:      "none",
	FamilyDiv:       "div",
	FamilyParagraph: "paragraph",
	FamilySpan:      "span",
	FamilyStrong:    "strong",
	FamilyEmph:      "emph",
	FamilyStrike:    "strike",
	FamilyCode:      "code",
	FamilyLink:      "link",
	FamilyImage:     "image",
	FamilyRule:      "rule",
	FamilyBreak:     "break",
	FamilyPre:       "pre",
	FamilyList:      "list",
	FamilyListItem:  "listItem",
	FamilyCustom:    "custom",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// familyKeys maps comma-separated tag names to their family.
var familyKeys = map[string]Family{
	"div":       FamilyDiv,
	"p":         FamilyParagraph,
	"span":      FamilySpan,
	"b, strong": FamilyStrong,
	"i, em":     FamilyEmph,
	"s, del":    FamilyStrike,
	"code":      FamilyCode,
	"a":         FamilyLink,
	"img":       FamilyImage,
	"hr":        FamilyRule,
	"br":        FamilyBreak,
	"pre":       FamilyPre,
	"ul, ol":    FamilyList,
	"li":        FamilyListItem,
}

// preserved tags always keep their built-in handler.
var preserved = map[string]bool{"div": true, "p": true, "span": true}

// handler returns the built-in handler of a family.
func (f Family) handler() Handler {
	switch f {
	case FamilyDiv, FamilyParagraph, FamilySpan:
		return preserve(f)
	case FamilyStrong:
		return strongMark
	case FamilyEmph:
		return symmetricMark(doctree.MarkEmph)
	case FamilyStrike:
		return symmetricMark(doctree.MarkStrike)
	case FamilyCode:
		return symmetricMark(doctree.MarkCode)
	case FamilyLink:
		return linkMark
	case FamilyImage:
		return image
	case FamilyRule:
		return rule
	case FamilyBreak:
		return lineBreak
	case FamilyPre:
		return preformatted
	case FamilyList:
		return list
	case FamilyListItem:
		return listItem
	}
	return nil
}

// entry is one row of the dispatch table.
type entry struct {
	family  Family
	handler Handler
}

// table maps lower-cased tag names to handlers. It is immutable once built.
type table map[string]entry

// splitKey turns a key such as "b, strong" into lower-cased tag names.
func splitKey(key string) []string {
	names := strings.Split(key, ", ")
	for i, n := range names {
		names[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return names
}

// newTable registers the built-in families, then the custom handlers.
// Custom entries for div, p and span are ignored.
func newTable(custom map[string]Handler) table {
	t := table{}
	for key, f := range familyKeys {
		for _, name := range splitKey(key) {
			t[name] = entry{family: f, handler: f.handler()}
		}
	}
	for key, h := range custom {
		if h == nil {
			continue
		}
		for _, name := range splitKey(key) {
			if name == "" || preserved[name] {
				continue
			}
			t[name] = entry{family: FamilyCustom, handler: h}
		}
	}
	return t
}

func (t table) lookup(tagName string) (entry, bool) {
	e, ok := t[tagName]
	return e, ok
}
