// Package crawl: location rules.
// Helpers to resolve, normalize and scope link destinations during crawling.
// Locations are either http(s) URLs or local file paths.
package crawl

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/richtree/core/source"
)

// documentExtensions are the extensions of documents the crawler follows.
var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// skippedSchemes never lead to documents.
var skippedSchemes = []string{"mailto:", "javascript:", "tel:", "data:", "#"}

// IsDocument reports whether location names a markdown document.
func IsDocument(location string) bool {
	p := location
	if source.IsURL(location) {
		u, err := url.Parse(location)
		if err != nil {
			return false
		}
		p = u.Path
	}
	return documentExtensions[strings.ToLower(path.Ext(p))]
}

// Resolve resolves a link destination found in the document at base.
// It returns "" for destinations that cannot name a document.
func Resolve(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	for _, s := range skippedSchemes {
		if strings.HasPrefix(strings.ToLower(href), s) {
			return ""
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if source.IsURL(base) {
		b, err := url.Parse(base)
		if err != nil {
			return ""
		}
		return Normalize(b.ResolveReference(ref).String())
	}
	if ref.Scheme != "" || ref.Host != "" {
		// Absolute URL from a local document.
		return Normalize(href)
	}
	if ref.Path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(base), filepath.FromSlash(ref.Path))
}

// Normalize strips fragments and queries from URLs and cleans paths.
func Normalize(location string) string {
	if !source.IsURL(location) {
		return filepath.Clean(location)
	}
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	u.Fragment = ""
	u.RawQuery = ""
	if u.Path != "" {
		u.Path = path.Clean(u.Path)
	}
	return u.String()
}

// Scope keeps a crawl on the starting host and inside the starting
// document's directory.
type Scope struct {
	url  bool
	host string
	dir  string
}

// NewScope returns the scope of a crawl starting at start.
func NewScope(start string) Scope {
	if source.IsURL(start) {
		u, err := url.Parse(start)
		if err == nil {
			return Scope{url: true, host: u.Host, dir: path.Dir(path.Clean("/" + u.Path))}
		}
	}
	return Scope{dir: filepath.Dir(filepath.Clean(start))}
}

// Contains reports whether location lies within the scope.
func (s Scope) Contains(location string) bool {
	if source.IsURL(location) != s.url {
		return false
	}
	if !s.url {
		rel, err := filepath.Rel(s.dir, filepath.Clean(location))
		return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
	}
	u, err := url.Parse(location)
	if err != nil || u.Host != s.host {
		return false
	}
	p := path.Clean("/" + u.Path)
	return s.dir == "/" || p == s.dir || strings.HasPrefix(p, s.dir+"/")
}

// Relative returns location relative to the scope's directory, using
// forward slashes.
func (s Scope) Relative(location string) string {
	if s.url {
		u, err := url.Parse(location)
		if err != nil {
			return location
		}
		return strings.TrimPrefix(strings.TrimPrefix(path.Clean("/"+u.Path), s.dir), "/")
	}
	rel, err := filepath.Rel(s.dir, filepath.Clean(location))
	if err != nil {
		return filepath.ToSlash(location)
	}
	return filepath.ToSlash(rel)
}
