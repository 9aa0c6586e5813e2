// Package output handles file naming and writing for richtree outputs.
// In single mode, file names flatten the source location
// (e.g., docs/intro.md -> docs_intro.json).
// In --all mode, files mirror the document's path relative to the start.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/richtree/core/source"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write writes output for a single document.
// Filename: flattened location plus ext (e.g., example_com_docs_intro.md).
func (w *Writer) Write(location string, data []byte, ext string) (string, error) {
	p := filepath.Join(w.OutputDir, FlatName(location)+ext)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", p, err)
	}
	return p, nil
}

// WriteRelative writes output for --all mode at rel, a slash-separated path
// relative to the crawl start, with its extension replaced by ext.
// Example: guide/setup.md -> <out>/guide/setup.json
func (w *Writer) WriteRelative(rel string, data []byte, ext string) (string, error) {
	rel = path.Clean("/" + filepath.ToSlash(rel))
	rel = strings.TrimPrefix(strings.TrimSuffix(rel, path.Ext(rel)), "/")
	if rel == "" {
		rel = "index"
	}

	fullPath := filepath.Join(w.OutputDir, filepath.FromSlash(rel)+ext)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// FlatName converts a location into a flat file name without extension.
// Example: https://example.com/docs/intro.md -> example_com_docs_intro
func FlatName(location string) string {
	var parts []string
	p := filepath.ToSlash(location)
	if source.IsURL(location) {
		if u, err := url.Parse(location); err == nil {
			parts = append(parts, sanitize(u.Host))
			p = u.Path
		}
	}

	p = strings.TrimSuffix(p, path.Ext(p))
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, sanitize(seg))
	}
	if len(parts) == 0 {
		return "index"
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
