package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-curriculum/cmd/curriculum/internal/bootstrap"
	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
	"github.com/google/uuid"
)

type stubLessonService struct {
	importCalls int
	importDir   string
	importOpts  interfaces.LessonImportOptions
}

func (s *stubLessonService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.LessonRecord, error) {
	return nil, nil
}

func (s *stubLessonService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.LessonRecord, error) {
	return nil, nil
}

func (s *stubLessonService) ImportDirectory(_ context.Context, dir string, opts interfaces.LessonImportOptions) (*interfaces.LessonImportResult, error) {
	s.importCalls++
	s.importDir = dir
	s.importOpts = opts
	return &interfaces.LessonImportResult{}, nil
}

func (s *stubLessonService) Sync(context.Context, string, interfaces.LessonSyncOptions) (*interfaces.LessonSyncResult, error) {
	return nil, nil
}

func (s *stubLessonService) Get(context.Context, uuid.UUID) (*interfaces.LessonRecord, error) {
	return nil, nil
}

func (s *stubLessonService) GetByOrdinal(context.Context, int) (*interfaces.LessonRecord, error) {
	return nil, nil
}

func (s *stubLessonService) GetBySlug(context.Context, string) (*interfaces.LessonRecord, error) {
	return nil, nil
}

func (s *stubLessonService) List(context.Context) ([]*interfaces.LessonRecord, error) {
	return nil, nil
}

type stubOutlineService struct {
	importCalls int
	importPath  string
	importOpts  interfaces.OutlineImportOptions
}

func (s *stubOutlineService) Load(context.Context, string) (*interfaces.OutlineRecord, error) {
	return nil, nil
}

func (s *stubOutlineService) Import(_ context.Context, path string, opts interfaces.OutlineImportOptions) (*interfaces.OutlineRecord, error) {
	s.importCalls++
	s.importPath = path
	s.importOpts = opts
	return &interfaces.OutlineRecord{Code: "readme"}, nil
}

func (s *stubOutlineService) Get(context.Context, string) (*interfaces.OutlineRecord, error) {
	return nil, nil
}

func (s *stubOutlineService) ResolveEntryURL(_ context.Context, entry interfaces.OutlineEntryRecord) (string, error) {
	return entry.Target, nil
}

func TestRunImportUsesCommandHandlers(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	lessonSvc := &stubLessonService{}
	outlineSvc := &stubOutlineService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Lessons: lessonSvc,
			Outline: outlineSvc,
			Logger:  logging.NoOp(),
		}, nil
	}

	if err := runImport([]string{
		"-lessons-dir", "docs",
		"-include-drafts",
	}); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	if lessonSvc.importCalls != 1 {
		t.Fatalf("expected lesson import once, got %d", lessonSvc.importCalls)
	}
	if !lessonSvc.importOpts.IncludeDrafts {
		t.Fatalf("expected include-drafts to be forwarded, got %#v", lessonSvc.importOpts)
	}
	if outlineSvc.importCalls != 1 {
		t.Fatalf("expected outline import once, got %d", outlineSvc.importCalls)
	}
	if outlineSvc.importPath != "README.md" {
		t.Fatalf("expected default index path, got %s", outlineSvc.importPath)
	}
}

func TestRunImportSkipsOutline(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	lessonSvc := &stubLessonService{}
	outlineSvc := &stubOutlineService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Lessons: lessonSvc,
			Outline: outlineSvc,
			Logger:  logging.NoOp(),
		}, nil
	}

	if err := runImport([]string{"-skip-outline"}); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	if outlineSvc.importCalls != 0 {
		t.Fatalf("expected outline import to be skipped, got %d calls", outlineSvc.importCalls)
	}
}
