package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// OutlineService abstracts curriculum index management: parsing the index
// document into levels and entries, persisting it, and resolving entry URLs
// for rendered sites.
type OutlineService interface {
	Load(ctx context.Context, path string) (*OutlineRecord, error)
	Import(ctx context.Context, path string, opts OutlineImportOptions) (*OutlineRecord, error)
	Get(ctx context.Context, code string) (*OutlineRecord, error)
	ResolveEntryURL(ctx context.Context, entry OutlineEntryRecord) (string, error)
}

// OutlineRecord is the curriculum index document: an ordered list of levels,
// each pointing at lesson files.
type OutlineRecord struct {
	ID     uuid.UUID
	Code   string
	Path   string
	Title  string
	Levels []OutlineLevelRecord
}

// OutlineLevelRecord groups lessons under a reading-order level with an
// optional goal statement.
type OutlineLevelRecord struct {
	ID       uuid.UUID
	Position int
	Title    string
	Goal     *string
	Entries  []OutlineEntryRecord
}

// OutlineEntryRecord is a single index link to a lesson file. Ordinal holds
// the lesson number parsed from the target filename, zero when the target
// does not follow the lesson naming scheme.
type OutlineEntryRecord struct {
	ID       uuid.UUID
	Position int
	Label    string
	Target   string
	Ordinal  int
}

// OutlineImportOptions controls outline persistence.
type OutlineImportOptions struct {
	// Code names the stored outline; defaults to "readme".
	Code string
	// DryRun parses and reports without touching the repository.
	DryRun bool
}
