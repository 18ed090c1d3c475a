package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// ServiceConfig wires the Markdown service with its collaborators. Zero values
// fall back to an OS filesystem rooted at BasePath and a GFM-enabled parser.
type ServiceConfig struct {
	// BasePath roots relative document paths, usually the lessons directory.
	BasePath string
	// Pattern is the default discovery glob (defaults to "*.md").
	Pattern string
	// Recursive controls directory traversal when no per-call override is set.
	Recursive bool
	// FS overrides the filesystem, primarily for tests.
	FS fs.FS
	// Parser overrides the HTML renderer.
	Parser interfaces.MarkdownParser
	// ParserDefaults seed the default parser when none is supplied.
	ParserDefaults interfaces.ParseOptions
	// Logger receives pipeline diagnostics. A no-op logger is used when nil.
	Logger interfaces.Logger
}

// Service implements interfaces.MarkdownService on top of the loader, the
// goldmark parser, and the structural analyzer.
type Service struct {
	loader *Loader
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

// NewService builds a Markdown service from the supplied configuration.
func NewService(cfg ServiceConfig) *Service {
	filesystem := cfg.FS
	if filesystem == nil {
		base := cfg.BasePath
		if base == "" {
			base = "."
		}
		filesystem = os.DirFS(base)
	}

	parser := cfg.Parser
	if parser == nil {
		parser = NewGoldmarkParser(cfg.ParserDefaults)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Service{
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:  cfg.BasePath,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		parser: parser,
		logger: logger,
	}
}

// Load reads and parses a single Markdown document relative to the base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, path, LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded markdown document", "path", result.Document.FilePath)
	return result.Document, nil
}

// LoadDirectory discovers and parses Markdown documents under dir, returned in
// path order.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, dir, LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, result.Document)
	}

	s.logger.Debug("loaded markdown directory", "dir", dir, "documents", len(docs))
	return docs, nil
}

// ScanDirectory loads every parseable document under dir and reports the
// files it could not load instead of failing on the first one. The checker
// relies on this so one unreadable lesson does not hide the rest.
func (s *Service) ScanDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, []interfaces.LoadFailure, error) {
	results, failures, err := s.loader.ScanDirectory(ctx, dir, LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, result.Document)
	}

	for _, failure := range failures {
		s.logger.Warn("skipped unreadable markdown document", "path", failure.Path, "error", failure.Err)
	}

	s.logger.Debug("scanned markdown directory", "dir", dir, "documents", len(docs), "failures", len(failures))
	return docs, failures, nil
}

// Render converts Markdown bytes into HTML.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseWithOptions(markdown, opts)
}

// RenderDocument renders a document body to HTML and caches the result on the
// document for subsequent callers.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("markdown render: nil document")
	}
	if len(doc.BodyHTML) > 0 {
		return doc.BodyHTML, nil
	}

	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, fmt.Errorf("markdown render %s: %w", doc.FilePath, err)
	}

	doc.BodyHTML = html
	return html, nil
}

// Analyze inspects the document body and reports its structural facts.
func (s *Service) Analyze(ctx context.Context, doc *interfaces.Document) (*interfaces.DocumentStructure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("markdown analyze: nil document")
	}

	structure, err := Analyze(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("markdown analyze %s: %w", doc.FilePath, err)
	}
	return structure, nil
}
