package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across invocations; extension toggles
// let hosts tailor rendering without rewriting the pipeline.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file-centric Markdown workflows used by the
// lessons and outline modules: load documents from disk, render them to HTML,
// and inspect their structure.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	// ScanDirectory loads what it can: unreadable or unparseable files are
	// returned as LoadFailures instead of aborting the walk.
	ScanDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, []LoadFailure, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	Analyze(ctx context.Context, doc *Document) (*DocumentStructure, error)
}

// LoadFailure records a file a directory scan could not turn into a Document.
type LoadFailure struct {
	Path string
	Err  error
}

// Document represents a Markdown file with parsed metadata and content. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so sync
	// workflows can detect changes without re-importing unchanged files.
	Checksum []byte
	// Source keeps the raw file bytes, frontmatter included, so structural
	// analysis can reason about the document exactly as authored.
	Source []byte
}

// FrontMatter models metadata extracted from Markdown files. The Custom map
// keeps domain-specific keys available without schema changes.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Summary string         `yaml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Raw     map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// DocumentStructure captures the structural facts about a Markdown body that
// the checker and lesson parser rely on: headings, fenced code blocks, and
// relative links, all in source order.
type DocumentStructure struct {
	// Title holds the text of the first level-1 heading, empty when absent.
	Title    string
	Headings []Heading
	Fences   []CodeFence
	Links    []Link
	// FenceOpeners counts the fence delimiter lines that open a block in the
	// raw source. Comparing it against len(Fences) detects dangling openers
	// that a parser would silently swallow.
	FenceOpeners int
	// UnclosedFence reports whether the source ends inside a fenced block.
	UnclosedFence bool
}

// Heading is a single Markdown heading with its 1-based source line.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// CodeFence describes one fenced code block found in the document body.
type CodeFence struct {
	Language string
	Line     int
}

// Link is a Markdown link as authored, destination left unresolved.
type Link struct {
	Text        string
	Destination string
	Line        int
}
