package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// convertedTags are the elements the converter reads attributes from; they
// survive sanitizing even when every attribute was stripped.
var convertedTags = []string{
	"div", "p", "span", "b", "strong", "i", "em", "s", "del", "code",
	"a", "img", "hr", "br", "pre", "ul", "ol", "li",
}

// embedAttrs are allowed on registered tags.
var embedAttrs = []string{"src", "width", "height", "title", "allow", "allowfullscreen", "frameborder"}

// Sanitizer cleans markup in two passes: forbidden tags are unwrapped, then a
// bluemonday policy strips everything not allowlisted.
type Sanitizer struct {
	policy *bluemonday.Policy
	forbid map[string]bool
}

// New builds a Sanitizer from cfg. The result does not observe later changes to cfg.
func New(cfg Config) *Sanitizer {
	forbid := make(map[string]bool, len(cfg.ForbidTags))
	for _, t := range cfg.ForbidTags {
		forbid[strings.ToLower(t)] = true
	}
	return &Sanitizer{policy: newPolicy(cfg), forbid: forbid}
}

// Default returns a Sanitizer built from DefaultConfig.
func Default() *Sanitizer {
	return New(DefaultConfig())
}

func newPolicy(cfg Config) *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)

	p.AllowElements(convertedTags...)
	p.AllowNoAttrs().OnElements(convertedTags...)
	if len(cfg.AddAttrs) > 0 {
		p.AllowAttrs(cfg.AddAttrs...).Globally()
	}

	for _, tag := range cfg.AddTags {
		p.AllowElements(tag)
		p.AllowAttrs(embedAttrs...).OnElements(tag)
		p.AllowNoAttrs().OnElements(tag)
	}
	return p
}

// Sanitize returns markup with forbidden tags unwrapped and unsafe tags and
// attributes removed. Text of removed tags is kept. Sanitizing clean markup
// returns it unchanged.
func (s *Sanitizer) Sanitize(markup string) string {
	return s.policy.Sanitize(s.unwrapForbidden(markup))
}

// unwrapForbidden drops forbidden start and end tags while keeping their text,
// including the raw text of script-like elements, which is escaped.
func (s *Sanitizer) unwrapForbidden(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		if z.Next() == html.ErrorToken {
			return b.String()
		}
		tok := z.Token()
		switch tok.Type {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if s.forbid[tok.Data] {
				continue
			}
			b.WriteString(tok.String())
		case html.TextToken:
			b.WriteString(html.EscapeString(tok.Data))
		}
	}
}
