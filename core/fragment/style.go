package fragment

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// CleanStyle drops blank and repeated declarations from a style attribute.
// The string is split on ";" and an entry is repeated only if it is
// byte-for-byte identical to an earlier one. Cleaning a cleaned style is a no-op.
func CleanStyle(style string) string {
	parts := strings.Split(style, ";")
	seen := make(map[string]bool, len(parts))
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" || seen[p] {
			continue
		}
		seen[p] = true
		kept = append(kept, p)
	}
	return strings.Join(kept, ";")
}

// TextAlign returns the value of the last text-align declaration in style,
// or "" when there is none or the style does not parse.
func TextAlign(style string) string {
	// The parser drops a final declaration that lacks its ";".
	style = strings.TrimRight(strings.TrimSpace(style), "; ")
	if style == "" {
		return ""
	}
	style += ";"
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return ""
	}
	align := ""
	for _, d := range decls {
		if strings.EqualFold(d.Property, "text-align") {
			align = strings.TrimSpace(d.Value)
		}
	}
	return align
}
