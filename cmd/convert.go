// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// load → parse → convert → render → write.
//
// It handles flag validation, configuration, renderer selection, and the
// single-document and --all modes.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/config"
	"github.com/gaurav-prasanna/richtree/core/convert"
	"github.com/gaurav-prasanna/richtree/core/extract"
	"github.com/gaurav-prasanna/richtree/core/mdast"
	"github.com/gaurav-prasanna/richtree/core/output"
	"github.com/gaurav-prasanna/richtree/core/render"
	"github.com/gaurav-prasanna/richtree/core/sanitize"
	"github.com/gaurav-prasanna/richtree/core/source"
	"github.com/gaurav-prasanna/richtree/crawl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag variables.
var (
	flagOnly      bool
	flagAll       bool
	flagDepth     int
	flagJSON      bool
	flagHTML      bool
	flagMarkdown  bool
	flagPDF       bool
	flagOutputDir string
	flagConfig    string
	flagAllowTags []string
	flagStrict    bool
	flagHighlight bool
	flagVerbose   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <path|url>",
	Short: "Convert a Markdown document to the specified output format",
	Long: `Convert loads a Markdown document (or an HTML page, which is first reduced to
its main content and normalized to Markdown), converts embedded HTML tags into
document nodes and marks, and writes the tree in the specified output format.

Examples:
  richtree convert README.md --json
  richtree convert docs/index.md --html --highlight --output_dir ./out
  richtree convert https://example.com/docs/readme.md --all --markdown
  richtree convert notes.md --pdf --config richtree.yaml --allow-tag iframe`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	registerFlags(convertCmd.Flags())
}

func registerFlags(fs *pflag.FlagSet) {
	// Mode flags.
	fs.BoolVar(&flagOnly, "only", false, "Convert only the given document (default)")
	fs.BoolVar(&flagAll, "all", false, "Also convert linked Markdown documents")
	fs.IntVar(&flagDepth, "depth", crawl.DefaultMaxDepth, "Link depth followed with --all")

	// Output format flags (mutually exclusive).
	fs.BoolVar(&flagJSON, "json", false, "Output the document tree as JSON")
	fs.BoolVar(&flagHTML, "html", false, "Output HTML")
	fs.BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	fs.BoolVar(&flagPDF, "pdf", false, "Output PDF")

	// Conversion flags.
	fs.StringVar(&flagConfig, "config", "", "YAML configuration file")
	fs.StringSliceVar(&flagAllowTags, "allow-tag", nil, "Allow an extra embedded tag (iframe, embed)")
	fs.BoolVar(&flagStrict, "strict", false, "Fail on embedded tags without a handler")
	fs.BoolVar(&flagHighlight, "highlight", false, "Highlight code blocks in HTML output")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every converted tag")

	// Output directory.
	fs.StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	location := args[0]

	// --- Validate flags ---
	if err := validateFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	sanitizerCfg, rejected := cfg.SanitizerConfig()
	for _, tag := range rejected {
		log.WithField("tag", tag).Warn("tag cannot be allowed, ignoring")
	}

	renderer, err := selectRenderer(cfg)
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	p := &pipeline{
		loader:    source.New(),
		extractor: extract.New(),
		parser:    mdast.NewParser(),
		converter: convert.New(
			convert.WithSanitizer(sanitize.New(sanitizerCfg)),
			convert.WithLogger(log),
			convert.WithStrict(cfg.Strict),
		),
		renderer: renderer,
		log:      log,
		now:      time.Now,
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagAll {
		return runAll(ctx, location, p, writer, log)
	}
	return runOnly(ctx, location, p, writer)
}

// runOnly processes a single document through the pipeline.
func runOnly(ctx context.Context, location string, p *pipeline, writer *output.Writer) error {
	data, _, err := p.process(ctx, location)
	if err != nil {
		return err
	}

	path, err := writer.Write(location, data, p.renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers linked documents and processes each through the pipeline.
func runAll(ctx context.Context, location string, p *pipeline, writer *output.Writer, log logrus.FieldLogger) error {
	fmt.Fprintf(os.Stdout, "Discovering documents from %s...\n", location)

	locations, err := crawl.DiscoverAll(ctx, location, p.loader, p.parser, crawl.Options{
		MaxDepth: flagDepth,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("discovering documents: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d documents to process\n", len(locations))

	scope := crawl.NewScope(location)
	var errCount int
	for i, loc := range locations {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(locations), loc)

		data, _, err := p.process(ctx, loc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteRelative(scope.Relative(loc), data, p.renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d documents failed\n", errCount, len(locations))
	}
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		if cfg, err = config.Load(flagConfig); err != nil {
			return cfg, err
		}
	}
	if fs.Changed("strict") {
		cfg.Strict = flagStrict
	}
	if fs.Changed("highlight") {
		cfg.Highlight.Enabled = flagHighlight
	}
	cfg.Sanitizer.AllowTags = append(cfg.Sanitizer.AllowTags, flagAllowTags...)
	if flagVerbose {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	return cfg, nil
}

// newLogger creates the stderr logger at the configured level.
func newLogger(cfg config.Config) (*logrus.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

// validateFlags checks that exactly one output format is chosen and
// that --only and --all are not both specified.
func validateFlags() error {
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}
	if flagDepth < 0 {
		return fmt.Errorf("--depth must not be negative (got %d)", flagDepth)
	}

	formatCount := 0
	for _, set := range []bool{flagJSON, flagHTML, flagMarkdown, flagPDF} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --json, --html, --markdown, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer(cfg config.Config) (core.Renderer, error) {
	switch {
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagHTML:
		var opts []render.HTMLOption
		if cfg.Highlight.Enabled {
			opts = append(opts, render.WithHighlight(cfg.Highlight.Style))
		}
		return render.NewHTMLRenderer(opts...), nil
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
