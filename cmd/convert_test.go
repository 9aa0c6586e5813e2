package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/convert"
	"github.com/gaurav-prasanna/richtree/core/extract"
	"github.com/gaurav-prasanna/richtree/core/mdast"
	"github.com/gaurav-prasanna/richtree/core/render"
	"github.com/gaurav-prasanna/richtree/core/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags registers the convert flags on a fresh set and parses args.
func resetFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func testPipeline(r core.Renderer) *pipeline {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &pipeline{
		loader:    source.New(),
		extractor: extract.New(),
		parser:    mdast.NewParser(),
		converter: convert.New(),
		renderer:  r,
		log:       log,
		now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"json", []string{"--json"}, false},
		{"html with all", []string{"--html", "--all"}, false},
		{"no format", nil, true},
		{"two formats", []string{"--json", "--pdf"}, true},
		{"only and all", []string{"--json", "--only", "--all"}, true},
		{"negative depth", []string{"--json", "--depth", "-1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t, tt.args...)
			err := validateFlags()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "richtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict: true\nhighlight:\n  enabled: true\n  style: monokai\n"), 0644))

	fs := resetFlags(t, "--json", "--config", path, "--strict=false", "--allow-tag", "iframe", "-v")
	cfg, err := loadConfig(fs)
	require.NoError(t, err)
	assert.False(t, cfg.Strict)
	assert.True(t, cfg.Highlight.Enabled)
	assert.Equal(t, "monokai", cfg.Highlight.Style)
	assert.Equal(t, []string{"iframe"}, cfg.Sanitizer.AllowTags)

	log, err := newLogger(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestLoadConfigMissingFile(t *testing.T) {
	fs := resetFlags(t, "--json", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	_, err := loadConfig(fs)
	assert.Error(t, err)
}

func TestSelectRenderer(t *testing.T) {
	resetFlags(t, "--markdown")
	cfg, err := loadConfig(pflag.NewFlagSet("x", pflag.ContinueOnError))
	require.NoError(t, err)
	r, err := selectRenderer(cfg)
	require.NoError(t, err)
	assert.Equal(t, ".md", r.Extension())
}

func TestProcessMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\n\nSome <b>bold</b> text.\n"), 0644))

	data, meta, err := testPipeline(render.NewJSONRenderer()).process(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Notes", meta.Title)
	assert.Equal(t, "2026-01-02T03:04:05Z", meta.ConvertedAt)

	var page core.DocumentJSON
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, path, page.Metadata.Source)
	assert.Equal(t, 1, page.Structure.RawTags)
	assert.Equal(t, "Notes\n\nSome bold text.", page.Content.Text)
}

func TestProcessHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	page := `<html><head><title>Page Title</title></head><body><nav>menu</nav><main><p>Hello <strong>there</strong></p></main></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(page), 0644))

	data, meta, err := testPipeline(render.NewHTMLRenderer()).process(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Page Title", meta.Title)
	assert.Contains(t, string(data), "<p>Hello <strong>there</strong></p>")
	assert.NotContains(t, string(data), "menu")
}

func TestProcessFailures(t *testing.T) {
	p := testPipeline(render.NewJSONRenderer())
	_, _, err := p.process(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorContains(t, err, "load:")

	path := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(path, []byte("<div>\n\nopen\n"), 0644))
	_, _, err = p.process(context.Background(), path)
	assert.ErrorContains(t, err, "convert:")
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "Heading", documentTitle("a.md", "Heading", "Page"))
	assert.Equal(t, "Page", documentTitle("a.html", "", "Page"))
	assert.Equal(t, "intro", documentTitle(filepath.Join("docs", "intro.md"), "", ""))
	assert.Equal(t, "intro", documentTitle("https://example.com/docs/intro.md", "", ""))
}
