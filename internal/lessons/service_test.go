package lessons

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	markdownsvc "github.com/goliatone/go-curriculum/internal/markdown"
	"github.com/goliatone/go-curriculum/lessons"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

func TestServiceLoadDirectory_OrderedByOrdinal(t *testing.T) {
	svc, _ := newTestService(t, curriculumFixture())

	records, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(records))
	}
	for i, want := range []int{1, 2, 10} {
		if records[i].Ordinal != want {
			t.Fatalf("expected ordinal %d at position %d, got %d", want, i, records[i].Ordinal)
		}
	}
	if records[0].BodyHTML == "" {
		t.Fatalf("expected rendered HTML on loaded lesson")
	}
}

func TestServiceLoadDirectory_IgnoresNonLessonFiles(t *testing.T) {
	fsys := curriculumFixture()
	fsys["README.md"] = &fstest.MapFile{Data: []byte("# Index\n"), ModTime: time.Now()}
	fsys["notes.md"] = &fstest.MapFile{Data: []byte("# Notes\n"), ModTime: time.Now()}

	svc, _ := newTestService(t, fsys)

	records, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{Pattern: "*.md"})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(records))
	}
}

func TestServiceImportDirectory(t *testing.T) {
	svc, repo := newTestService(t, curriculumFixture())

	result, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	if len(result.CreatedIDs) != 3 || len(result.UpdatedIDs) != 0 {
		t.Fatalf("expected 3 creations, got %#v", result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	stored, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored lessons, got %d", len(stored))
	}
}

func TestServiceImportDirectory_SkipsUnchanged(t *testing.T) {
	svc, _ := newTestService(t, curriculumFixture())

	if _, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	result, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if len(result.SkippedIDs) != 3 {
		t.Fatalf("expected 3 skips on repeat import, got %#v", result)
	}
	if len(result.CreatedIDs) != 0 || len(result.UpdatedIDs) != 0 {
		t.Fatalf("expected no writes on repeat import, got %#v", result)
	}
}

func TestServiceImportDirectory_UpdatesChanged(t *testing.T) {
	fsys := curriculumFixture()
	svc, repo := newTestService(t, fsys)

	if _, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	fsys["lesson_2.md"] = &fstest.MapFile{
		Data:    []byte("# Lesson 2: Reactive State\n\nRewritten intro.\n\n## Declaring State\n\nNew text.\n"),
		ModTime: time.Now().UTC(),
	}

	result, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if len(result.UpdatedIDs) != 1 || len(result.SkippedIDs) != 2 {
		t.Fatalf("expected 1 update and 2 skips, got %#v", result)
	}

	updated, err := repo.GetByOrdinal(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetByOrdinal: %v", err)
	}
	if updated.Body != "# Lesson 2: Reactive State\n\nRewritten intro.\n\n## Declaring State\n\nNew text.\n" {
		t.Fatalf("expected updated body, got %q", updated.Body)
	}
}

func TestServiceImportDirectory_DryRun(t *testing.T) {
	svc, repo := newTestService(t, curriculumFixture())

	result, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.CreatedIDs) != 3 {
		t.Fatalf("expected 3 planned creations, got %#v", result)
	}

	stored, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("dry run must not persist, found %d records", len(stored))
	}
}

func TestServiceImportDirectory_DraftsSkipped(t *testing.T) {
	fsys := curriculumFixture()
	fsys["lesson_4.md"] = &fstest.MapFile{
		Data:    []byte("---\ndraft: true\n---\n\n# Lesson 4: Work in Progress\n\n## Placeholder\n\nSoon.\n"),
		ModTime: time.Now().UTC(),
	}
	svc, _ := newTestService(t, fsys)

	result, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.CreatedIDs) != 3 || len(result.SkippedIDs) != 1 {
		t.Fatalf("expected the draft to be skipped, got %#v", result)
	}

	withDrafts, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{IncludeDrafts: true})
	if err != nil {
		t.Fatalf("ImportDirectory with drafts: %v", err)
	}
	if len(withDrafts.CreatedIDs) != 1 {
		t.Fatalf("expected the draft to be created, got %#v", withDrafts)
	}
}

func TestServiceLoadDirectory_OrdinalConflict(t *testing.T) {
	fsys := curriculumFixture()
	fsys["sub/lesson_1.md"] = &fstest.MapFile{
		Data:    []byte("# Lesson 1: Duplicate\n\n## Section\n\nText.\n"),
		ModTime: time.Now().UTC(),
	}
	svc, _ := newTestService(t, fsys)

	yes := true
	_, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{Recursive: &yes})
	if !errors.Is(err, lessons.ErrOrdinalConflict) {
		t.Fatalf("expected ErrOrdinalConflict, got %v", err)
	}
}

func TestServiceSync_DeletesOrphans(t *testing.T) {
	fsys := curriculumFixture()
	svc, repo := newTestService(t, fsys)

	if _, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{}); err != nil {
		t.Fatalf("import: %v", err)
	}

	delete(fsys, "lesson_10.md")

	result, err := svc.Sync(context.Background(), ".", interfaces.LessonSyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Deleted != 1 {
		t.Fatalf("expected 1 deletion, got %#v", result)
	}

	if _, err := repo.GetByOrdinal(context.Background(), 10); !errors.Is(err, lessons.ErrLessonNotFound) {
		t.Fatalf("expected lesson 10 gone, got %v", err)
	}
}

func TestServiceQueries(t *testing.T) {
	svc, _ := newTestService(t, curriculumFixture())

	if _, err := svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{}); err != nil {
		t.Fatalf("import: %v", err)
	}

	byOrdinal, err := svc.GetByOrdinal(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetByOrdinal: %v", err)
	}
	if byOrdinal.Title != "Lesson 2: Reactive State" {
		t.Fatalf("unexpected title %q", byOrdinal.Title)
	}

	bySlug, err := svc.GetBySlug(context.Background(), byOrdinal.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if bySlug.ID != byOrdinal.ID {
		t.Fatalf("expected same record via slug lookup")
	}

	byID, err := svc.Get(context.Background(), byOrdinal.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if byID.Ordinal != 2 {
		t.Fatalf("unexpected ordinal %d", byID.Ordinal)
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(all))
	}
}

func TestServiceMetadataValidation(t *testing.T) {
	fsys := fstest.MapFS{
		"lesson_1.md": &fstest.MapFile{
			Data:    []byte("---\ndifficulty: expert\n---\n\n# Lesson 1: Intro\n\n## Setup\n\nText.\n"),
			ModTime: time.Now().UTC(),
		},
	}

	markdown := markdownsvc.NewService(markdownsvc.ServiceConfig{FS: fsys})
	svc, err := NewService(ServiceConfig{
		Markdown: markdown,
		Repo:     NewMemoryLessonRepository(),
		MetadataSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"difficulty": map[string]any{
					"type": "string",
					"enum": []any{"beginner", "intermediate", "advanced"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.ImportDirectory(context.Background(), ".", interfaces.LessonImportOptions{})
	if !errors.Is(err, lessons.ErrMetadataInvalid) {
		t.Fatalf("expected ErrMetadataInvalid, got %v", err)
	}
}

func curriculumFixture() fstest.MapFS {
	now := time.Now().UTC()
	return fstest.MapFS{
		"lesson_1.md": &fstest.MapFile{
			Data:    []byte("# Lesson 1: Getting Started\n\nIntro.\n\n## Prerequisites\n\nNode.js 18.\n\n## Creating a Project\n\n```bash\nnpm create vue@latest\n```\n"),
			ModTime: now,
		},
		"lesson_2.md": &fstest.MapFile{
			Data:    []byte("# Lesson 2: Reactive State\n\nIntro.\n\n## Declaring State\n\n```js\nconst count = ref(0)\n```\n"),
			ModTime: now,
		},
		"lesson_10.md": &fstest.MapFile{
			Data:    []byte("# Lesson 10: Composition API\n\nIntro.\n\n## setup()\n\nText.\n"),
			ModTime: now,
		},
	}
}

func newTestService(tb testing.TB, fsys fstest.MapFS) (*Service, *MemoryLessonRepository) {
	tb.Helper()

	repo := NewMemoryLessonRepository()
	markdown := markdownsvc.NewService(markdownsvc.ServiceConfig{FS: fsys})

	svc, err := NewService(ServiceConfig{
		Markdown: markdown,
		Repo:     repo,
	})
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc, repo
}
