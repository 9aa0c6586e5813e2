package cmd

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/extract"
	"github.com/gaurav-prasanna/richtree/core/normalize"
	"github.com/gaurav-prasanna/richtree/core/render"
	"github.com/gaurav-prasanna/richtree/core/source"
	"github.com/sirupsen/logrus"
)

// pipeline holds the stages one document goes through:
// load → (HTML: extract → normalize) → parse → convert → render.
type pipeline struct {
	loader    core.Loader
	extractor core.Extractor
	parser    core.Parser
	converter core.Converter
	renderer  core.Renderer
	log       logrus.FieldLogger
	now       func() time.Time
}

// process runs a single location through the full pipeline.
func (p *pipeline) process(ctx context.Context, location string) ([]byte, core.DocumentMetadata, error) {
	log := p.log.WithField("location", location)

	// 1. Load
	src, err := p.loader.Load(ctx, location)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("load: %w", err)
	}
	markdown := src.Body

	// 2. HTML sources: extract main content and normalize to Markdown
	var pageTitle string
	if src.MediaType == core.MediaHTML {
		log.Debug("converting HTML source to markdown")
		page := string(src.Body)
		pageTitle = extract.Title(page)
		content, err := p.extractor.Extract(page)
		if err != nil {
			return nil, core.DocumentMetadata{}, fmt.Errorf("extract: %w", err)
		}
		var opts []normalize.Option
		if source.IsURL(location) {
			opts = append(opts, normalize.WithDomain(location))
		}
		md, err := normalize.New(opts...).Normalize(content)
		if err != nil {
			return nil, core.DocumentMetadata{}, fmt.Errorf("normalize: %w", err)
		}
		markdown = []byte(md)
	}

	// 3. Parse
	root, err := p.parser.Parse(markdown)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("parse: %w", err)
	}

	// 4. Convert
	doc, err := p.converter.Convert(root)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("convert: %w", err)
	}

	meta := core.DocumentMetadata{
		Source:      location,
		Title:       documentTitle(location, render.Title(doc), pageTitle),
		ConvertedAt: p.now().UTC().Format(time.RFC3339),
	}

	// 5. Render
	data, err := p.renderer.Render(doc, meta)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("render: %w", err)
	}
	log.WithField("bytes", len(data)).Debug("rendered document")
	return data, meta, nil
}

// documentTitle picks the first heading, then the page title, then the
// file name without its extension.
func documentTitle(location, heading, pageTitle string) string {
	if heading != "" {
		return heading
	}
	if pageTitle != "" {
		return pageTitle
	}
	name := filepath.Base(location)
	if source.IsURL(location) {
		name = path.Base(strings.TrimSuffix(location, "/"))
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
