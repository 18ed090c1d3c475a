package outline

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultCode names the outline stored when callers do not provide one.
const DefaultCode = "readme"

// Outline is the curriculum index document: ordered levels pointing at
// lesson files in suggested reading order.
type Outline struct {
	bun.BaseModel `bun:"table:outlines,alias:o"`

	ID    uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Code  string    `bun:"code,notnull,unique" json:"code"`
	Path  string    `bun:"path,notnull" json:"path"`
	Title string    `bun:"title,notnull" json:"title"`
	// Checksum digests the source document so repeated imports can skip
	// unchanged files.
	Checksum  string     `bun:"checksum" json:"checksum,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Levels []*Level `bun:"rel:has-many,join:id=outline_id" json:"levels,omitempty"`
}

// Level groups entries under a reading-order stage with a goal statement.
type Level struct {
	bun.BaseModel `bun:"table:outline_levels,alias:ol"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	OutlineID uuid.UUID `bun:"outline_id,notnull,type:uuid" json:"outline_id"`
	Position  int       `bun:"position,notnull" json:"position"`
	Title     string    `bun:"title,notnull" json:"title"`
	Goal      *string   `bun:"goal" json:"goal,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Entries []*Entry `bun:"rel:has-many,join:id=level_id" json:"entries,omitempty"`
}

// Entry is a single index link to a lesson file. Ordinal is parsed from the
// target filename; zero means the target does not follow the lesson naming
// scheme.
type Entry struct {
	bun.BaseModel `bun:"table:outline_entries,alias:oe"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	LevelID   uuid.UUID `bun:"level_id,notnull,type:uuid" json:"level_id"`
	Position  int       `bun:"position,notnull" json:"position"`
	Label     string    `bun:"label,notnull" json:"label"`
	Target    string    `bun:"target,notnull" json:"target"`
	Ordinal   int       `bun:"ordinal,notnull,default:0" json:"ordinal"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
