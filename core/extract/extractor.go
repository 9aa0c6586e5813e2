// Package extract implements the Extractor interface.
// It isolates the main content from a full HTML page by:
//  1. Removing noise elements (scripts, navigation, forms, sidebars)
//  2. Picking the best content container (<main>, <article>, or <body>)
//
// Images stay in the content; they survive as image nodes after conversion.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// ErrNoContent is returned when a page has no usable content container.
var ErrNoContent = errors.New("no content container found in HTML")

// noise matches elements removed before extraction.
var noise = cascadia.MustCompile(strings.Join([]string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}, ", "))

var containers = []cascadia.Selector{
	cascadia.MustCompile("main"),
	cascadia.MustCompile("article"),
	cascadia.MustCompile("body"),
}

var titleSel = cascadia.MustCompile("head > title, title")

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes a full HTML page and returns the inner HTML of its main
// content container.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.FindMatcher(noise).Remove()

	var content *goquery.Selection
	for _, sel := range containers {
		if found := doc.FindMatcher(sel); found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		return "", ErrNoContent
	}

	result, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// Title returns the trimmed text of the page's <title>, or "".
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.FindMatcher(titleSel).First().Text()), " ")
}
