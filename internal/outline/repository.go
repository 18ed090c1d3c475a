package outline

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-curriculum/outline"
)

// OutlineRepository is the storage contract the outline service depends on.
type OutlineRepository interface {
	Upsert(ctx context.Context, record *outline.Outline) (*outline.Outline, error)
	GetByCode(ctx context.Context, code string) (*outline.Outline, error)
	Delete(ctx context.Context, code string) error
}

func NewOutlineModelRepository(db *bun.DB) repository.Repository[*outline.Outline] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*outline.Outline]{
		NewRecord: func() *outline.Outline { return &outline.Outline{} },
		GetID: func(o *outline.Outline) uuid.UUID {
			return o.ID
		},
		SetID: func(o *outline.Outline, id uuid.UUID) {
			o.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(o *outline.Outline) string {
			return o.Code
		},
	})
}

func NewLevelModelRepository(db *bun.DB) repository.Repository[*outline.Level] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*outline.Level]{
		NewRecord: func() *outline.Level { return &outline.Level{} },
		GetID: func(l *outline.Level) uuid.UUID {
			return l.ID
		},
		SetID: func(l *outline.Level, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return ""
		},
		GetIdentifierValue: func(*outline.Level) string {
			return ""
		},
	})
}

func NewEntryModelRepository(db *bun.DB) repository.Repository[*outline.Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*outline.Entry]{
		NewRecord: func() *outline.Entry { return &outline.Entry{} },
		GetID: func(e *outline.Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *outline.Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return ""
		},
		GetIdentifierValue: func(*outline.Entry) string {
			return ""
		},
	})
}
