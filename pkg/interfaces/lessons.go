package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LessonService abstracts lesson management so commands and the checker can
// load, import, and query lesson documents without depending on internal
// implementations.
type LessonService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*LessonRecord, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*LessonRecord, error)
	ImportDirectory(ctx context.Context, dir string, opts LessonImportOptions) (*LessonImportResult, error)
	Sync(ctx context.Context, dir string, opts LessonSyncOptions) (*LessonSyncResult, error)
	Get(ctx context.Context, id uuid.UUID) (*LessonRecord, error)
	GetByOrdinal(ctx context.Context, ordinal int) (*LessonRecord, error)
	GetBySlug(ctx context.Context, slug string) (*LessonRecord, error)
	List(ctx context.Context) ([]*LessonRecord, error)
}

// LessonRecord reflects a lesson document as parsed from disk or returned
// from the repository.
type LessonRecord struct {
	ID       uuid.UUID
	Ordinal  int
	Slug     string
	Title    string
	Summary  *string
	Path     string
	Body     string
	BodyHTML string
	Checksum string
	Sections []LessonSectionRecord
	Samples  []CodeSampleRecord
	Tags     []string
	Draft    bool
	Metadata map[string]any
	Modified time.Time
}

// LessonSectionRecord is an ordered section heading inside a lesson body.
type LessonSectionRecord struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Line  int    `json:"line"`
}

// CodeSampleRecord describes one fenced code block inside a lesson body.
type CodeSampleRecord struct {
	Language string `json:"language"`
	Line     int    `json:"line"`
}

// LessonImportOptions controls how lesson documents are persisted.
type LessonImportOptions struct {
	// DryRun collects import diffs without touching the repository.
	DryRun bool
	// IncludeDrafts imports documents whose frontmatter marks them as drafts.
	IncludeDrafts bool
}

// LessonSyncOptions extends import options with delete semantics for repeated
// synchronisation runs.
type LessonSyncOptions struct {
	LessonImportOptions
	// DeleteOrphaned removes persisted lessons without a matching source file.
	DeleteOrphaned bool
}

// LessonImportResult reports the outcome of an import run.
type LessonImportResult struct {
	CreatedIDs []uuid.UUID
	UpdatedIDs []uuid.UUID
	SkippedIDs []uuid.UUID
	Errors     []error
}

// LessonSyncResult summarises a bulk sync run across many files.
type LessonSyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
