// Package source implements the Loader interface.
// Documents are read from the local filesystem or fetched over HTTP(S).
package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gaurav-prasanna/richtree/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "richtree/1.0 (https://github.com/gaurav-prasanna/richtree)"
	// maxBodySize caps a fetched document.
	maxBodySize = 16 << 20
)

// Loader loads documents from files and URLs.
type Loader struct {
	client *http.Client
}

// New creates a Loader with a sensible timeout.
func New() *Loader {
	return &Loader{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// IsURL reports whether location is an http(s) URL rather than a path.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load reads the document at location, a file path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, location string) (*core.Source, error) {
	if IsURL(location) {
		return l.fetch(ctx, location)
	}
	body, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return &core.Source{
		Location:  location,
		MediaType: mediaTypeFromPath(location),
		Body:      body,
	}, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*core.Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/markdown,text/plain;q=0.9,text/html;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	media := mediaTypeFromHeader(resp.Header.Get("Content-Type"))
	if media == "" {
		u, _ := url.Parse(rawURL)
		media = mediaTypeFromPath(u.Path)
	}
	return &core.Source{Location: rawURL, MediaType: media, Body: body}, nil
}

// mediaTypeFromHeader maps a Content-Type to a media type, "" when it says nothing useful.
func mediaTypeFromHeader(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mt {
	case "text/html", "application/xhtml+xml":
		return core.MediaHTML
	case "text/markdown", "text/x-markdown":
		return core.MediaMarkdown
	}
	return ""
}

// mediaTypeFromPath guesses from the extension; anything not HTML is markdown.
func mediaTypeFromPath(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm", ".xhtml":
		return core.MediaHTML
	}
	return core.MediaMarkdown
}
