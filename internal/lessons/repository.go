package lessons

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-curriculum/lessons"
)

// LessonRepository is the storage contract the lesson service depends on.
// Memory and bun-backed implementations satisfy it.
type LessonRepository interface {
	Create(ctx context.Context, record *lessons.Lesson) (*lessons.Lesson, error)
	Update(ctx context.Context, record *lessons.Lesson) (*lessons.Lesson, error)
	GetByID(ctx context.Context, id uuid.UUID) (*lessons.Lesson, error)
	GetByOrdinal(ctx context.Context, ordinal int) (*lessons.Lesson, error)
	GetBySlug(ctx context.Context, slug string) (*lessons.Lesson, error)
	List(ctx context.Context) ([]*lessons.Lesson, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewLessonModelRepository(db *bun.DB) repository.Repository[*lessons.Lesson] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*lessons.Lesson]{
		NewRecord: func() *lessons.Lesson { return &lessons.Lesson{} },
		GetID: func(l *lessons.Lesson) uuid.UUID {
			return l.ID
		},
		SetID: func(l *lessons.Lesson, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(l *lessons.Lesson) string {
			return l.Slug
		},
	})
}
