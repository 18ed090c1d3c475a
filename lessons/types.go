package lessons

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Lesson is the canonical record for one instructional document.
type Lesson struct {
	bun.BaseModel `bun:"table:lessons,alias:ls"`

	ID      uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Ordinal int       `bun:"ordinal,notnull,unique" json:"ordinal"`
	Slug    string    `bun:"slug,notnull,unique" json:"slug"`
	Title   string    `bun:"title,notnull" json:"title"`
	Summary *string   `bun:"summary" json:"summary,omitempty"`
	// Path is the source file location relative to the lessons directory.
	Path     string         `bun:"path,notnull" json:"path"`
	Body     string         `bun:"body,notnull" json:"body"`
	BodyHTML string         `bun:"body_html" json:"body_html,omitempty"`
	Checksum string         `bun:"checksum,notnull" json:"checksum"`
	Sections []Section      `bun:"sections,type:jsonb" json:"sections,omitempty"`
	Samples  []CodeSample   `bun:"code_samples,type:jsonb" json:"code_samples,omitempty"`
	Tags     []string       `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Draft    bool           `bun:"draft,notnull,default:false" json:"draft"`
	Metadata map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	// SourceModified mirrors the file mtime observed at import time.
	SourceModified time.Time  `bun:"source_modified,nullzero" json:"source_modified"`
	DeletedAt      *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Section is an ordered heading below the lesson title, stored as part of the
// lesson's JSON payload.
type Section struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Line  int    `json:"line"`
}

// CodeSample records one fenced code block found in the lesson body.
type CodeSample struct {
	Language string `json:"language"`
	Line     int    `json:"line"`
}
