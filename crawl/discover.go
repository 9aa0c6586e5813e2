// Package crawl provides document discovery for --all mode.
// Starting from one document it follows links to other markdown documents
// breadth first, keeping crawling logic separate from the conversion pipeline.
package crawl

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/mdast"
	"github.com/sirupsen/logrus"
)

// Defaults for Options.
const (
	DefaultMaxDepth     = 3
	DefaultMaxDocuments = 100
)

// Options bounds a crawl.
type Options struct {
	// MaxDepth is the number of links followed away from the start.
	MaxDepth     int
	MaxDocuments int
	Logger       logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	if o.MaxDocuments <= 0 {
		o.MaxDocuments = DefaultMaxDocuments
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}

// DiscoverAll finds the documents reachable from start. The start document
// is always first; a start document that cannot be loaded is an error, later
// failures are logged and skipped.
func DiscoverAll(ctx context.Context, start string, loader core.Loader, parser core.Parser, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	start = Normalize(start)
	scope := NewScope(start)

	queue := NewQueue()
	queue.Add(start, 0)

	for queue.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := queue.Next()
		log := opts.Logger.WithFields(logrus.Fields{"location": item.Location, "depth": item.Depth})

		src, err := loader.Load(ctx, item.Location)
		if err != nil {
			if item.Location == start {
				return nil, fmt.Errorf("loading start document: %w", err)
			}
			log.WithError(err).Warn("skipping unreadable document")
			continue
		}
		if item.Depth >= opts.MaxDepth {
			continue
		}

		links, err := Links(src, parser)
		if err != nil {
			log.WithError(err).Warn("skipping links of unparsable document")
			continue
		}
		for _, href := range links {
			target := Resolve(item.Location, href)
			if target == "" || !IsDocument(target) || !scope.Contains(target) {
				continue
			}
			if queue.Visited() >= opts.MaxDocuments {
				log.Debug("document limit reached")
				return queue.All(), nil
			}
			if queue.Add(target, item.Depth+1) {
				log.WithField("target", target).Debug("discovered document")
			}
		}
	}

	return queue.All(), nil
}

// Links returns the link destinations of a loaded document in document order.
func Links(src *core.Source, parser core.Parser) ([]string, error) {
	if src.MediaType == core.MediaHTML {
		return htmlLinks(src.Body)
	}
	root, err := parser.Parse(src.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.Location, err)
	}
	var links []string
	err = mdast.Walk(root, func(n *mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if entering && n.Type == mdast.Link && n.Destination != "" {
			links = append(links, n.Destination)
		}
		return mdast.WalkContinue, nil
	})
	return links, err
}

// htmlLinks extracts all href values from <a> tags.
func htmlLinks(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return links, nil
}
