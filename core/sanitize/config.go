// Package sanitize neutralizes raw markup before any attribute is read from it.
// A Sanitizer is built once from a Config and is safe for concurrent use.
package sanitize

import "strings"

// registrableTags are the only tag names RegisterTagAllow accepts.
var registrableTags = map[string]bool{
	"iframe": true,
	"embed":  true,
}

// Config lists the tags and attributes a Sanitizer lets through.
type Config struct {
	// AddTags are extra tags allowed in addition to the base policy.
	// Populate it through RegisterTagAllow.
	AddTags []string
	// AddAttrs are attributes allowed on every element.
	AddAttrs []string
	// ForbidTags are always unwrapped: the tag goes, its text stays.
	ForbidTags []string
}

// DefaultConfig returns the attribute allowlist and forbidden-tag list used
// for embedded markup in documents.
func DefaultConfig() Config {
	return Config{
		AddAttrs: []string{
			"rel", "target", "hreflang", "type", "style", "class", "id", "data-raw-html", "align",
		},
		ForbidTags: []string{
			"input", "script", "textarea", "form", "button", "select", "meta", "link", "object", "base",
			"onclick", "onload", "onerror",
		},
	}
}

// RegisterTagAllow adds tagName to the allowed tags if it is one of the
// registrable names (iframe, embed) and reports whether it did. Any other name
// leaves the config untouched. Register before building the Sanitizer.
func (c *Config) RegisterTagAllow(tagName string) bool {
	name := strings.ToLower(strings.TrimSpace(tagName))
	if !registrableTags[name] {
		return false
	}
	for _, t := range c.AddTags {
		if t == name {
			return true
		}
	}
	c.AddTags = append(c.AddTags, name)
	return true
}
