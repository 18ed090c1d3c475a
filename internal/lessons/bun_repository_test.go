package lessons_test

import (
	"context"
	"errors"
	"testing"
	"time"

	lessonssvc "github.com/goliatone/go-curriculum/internal/lessons"
	"github.com/goliatone/go-curriculum/lessons"
	"github.com/goliatone/go-curriculum/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func TestBunLessonRepository_WithCache(t *testing.T) {
	ctx := context.Background()

	bunDB, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = bunDB.Close() })
	bunDB.SetMaxOpenConns(1)

	createLessonTables(t, bunDB)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := lessonssvc.NewBunLessonRepositoryWithCache(bunDB, cacheSvc, keySerializer)

	record := &lessons.Lesson{
		ID:       uuid.New(),
		Ordinal:  1,
		Slug:     "getting-started",
		Title:    "Getting Started",
		Path:     "lesson_1.md",
		Body:     "# Getting Started\n",
		Checksum: "abc123",
		Samples: []lessons.CodeSample{
			{Language: "js", Line: 12},
		},
	}

	created, err := repo.Create(ctx, record)
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	if created.ID != record.ID {
		t.Fatalf("expected id %s, got %s", record.ID, created.ID)
	}

	byOrdinal, err := repo.GetByOrdinal(ctx, 1)
	if err != nil {
		t.Fatalf("get by ordinal: %v", err)
	}
	if byOrdinal.Slug != "getting-started" {
		t.Fatalf("unexpected slug %q", byOrdinal.Slug)
	}

	bySlug, err := repo.GetBySlug(ctx, "getting-started")
	if err != nil {
		t.Fatalf("first get by slug: %v", err)
	}
	if _, err := repo.GetBySlug(ctx, "getting-started"); err != nil {
		t.Fatalf("cached get by slug: %v", err)
	}
	if len(bySlug.Samples) != 1 || bySlug.Samples[0].Language != "js" {
		t.Fatalf("expected code samples to round-trip, got %#v", bySlug.Samples)
	}

	bySlug.Title = "Getting Started With Components"
	if _, err := repo.Update(ctx, bySlug); err != nil {
		t.Fatalf("update lesson: %v", err)
	}
	updated, err := repo.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get updated lesson: %v", err)
	}
	if updated.Title != "Getting Started With Components" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list lessons: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one lesson, got %d", len(all))
	}

	if err := repo.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete lesson: %v", err)
	}

	var notFound *lessons.NotFoundError
	if _, err := repo.GetByOrdinal(ctx, 1); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
	if err := repo.Delete(ctx, record.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for repeated delete, got %v", err)
	}
}

func createLessonTables(t *testing.T, db *bun.DB) {
	t.Helper()

	ctx := context.Background()
	if _, err := db.NewCreateTable().
		Model((*lessons.Lesson)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		t.Fatalf("create lessons table: %v", err)
	}
}
