package lessonscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

type importCall struct {
	directory string
	options   interfaces.LessonImportOptions
}

type syncCall struct {
	directory string
	options   interfaces.LessonSyncOptions
}

type stubLessonService struct {
	importCalls []importCall
	syncCalls   []syncCall

	importResult *interfaces.LessonImportResult
	syncResult   *interfaces.LessonSyncResult

	importErr error
	syncErr   error
}

func (s *stubLessonService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.LessonRecord, error) {
	return nil, nil
}

func (s *stubLessonService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.LessonRecord, error) {
	return nil, nil
}

func (s *stubLessonService) ImportDirectory(ctx context.Context, directory string, opts interfaces.LessonImportOptions) (*interfaces.LessonImportResult, error) {
	s.importCalls = append(s.importCalls, importCall{
		directory: directory,
		options:   opts,
	})
	if s.importErr != nil {
		return nil, s.importErr
	}
	return s.importResult, nil
}

func (s *stubLessonService) Sync(ctx context.Context, directory string, opts interfaces.LessonSyncOptions) (*interfaces.LessonSyncResult, error) {
	s.syncCalls = append(s.syncCalls, syncCall{
		directory: directory,
		options:   opts,
	})
	if s.syncErr != nil {
		return nil, s.syncErr
	}
	return s.syncResult, nil
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

type outlineImportCall struct {
	path    string
	options interfaces.OutlineImportOptions
}

type stubOutlineService struct {
	importCalls  []outlineImportCall
	importRecord *interfaces.OutlineRecord
	importErr    error
}

func (s *stubOutlineService) Load(context.Context, string) (*interfaces.OutlineRecord, error) {
	return nil, nil
}

func (s *stubOutlineService) Import(ctx context.Context, path string, opts interfaces.OutlineImportOptions) (*interfaces.OutlineRecord, error) {
	s.importCalls = append(s.importCalls, outlineImportCall{path: path, options: opts})
	if s.importErr != nil {
		return nil, s.importErr
	}
	return s.importRecord, nil
}

func (s *stubOutlineService) Get(context.Context, string) (*interfaces.OutlineRecord, error) {
	return nil, nil
}

func (s *stubOutlineService) ResolveEntryURL(_ context.Context, entry interfaces.OutlineEntryRecord) (string, error) {
	return entry.Target, nil
}

func TestImportDirectoryHandlerForwardsOptions(t *testing.T) {
	svc := &stubLessonService{importResult: &interfaces.LessonImportResult{}}
	handler := NewImportDirectoryHandler(svc, nil, FeatureGates{})

	msg := ImportDirectoryCommand{Directory: "./curriculum", DryRun: true, IncludeDrafts: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(svc.importCalls) != 1 {
		t.Fatalf("expected one import call, got %d", len(svc.importCalls))
	}
	call := svc.importCalls[0]
	if call.directory != "./curriculum" {
		t.Fatalf("unexpected directory %q", call.directory)
	}
	if !call.options.DryRun || !call.options.IncludeDrafts {
		t.Fatalf("expected options to be forwarded, got %#v", call.options)
	}
}

func TestImportDirectoryHandlerRequiresDirectory(t *testing.T) {
	svc := &stubLessonService{}
	handler := NewImportDirectoryHandler(svc, nil, FeatureGates{})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(svc.importCalls) != 0 {
		t.Fatal("expected service not to be called")
	}
}

func TestImportDirectoryHandlerRespectsFeatureGate(t *testing.T) {
	svc := &stubLessonService{}
	handler := NewImportDirectoryHandler(svc, nil, FeatureGates{
		LessonsEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "./curriculum"})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrLessonsFeatureDisabled) {
		t.Fatalf("expected ErrLessonsFeatureDisabled, got %v", err)
	}
	if len(svc.importCalls) != 0 {
		t.Fatal("expected service not to be called when gated off")
	}
}

func TestSyncDirectoryHandlerForwardsOptions(t *testing.T) {
	svc := &stubLessonService{syncResult: &interfaces.LessonSyncResult{Created: 1}}
	handler := NewSyncDirectoryHandler(svc, nil, FeatureGates{})

	msg := SyncDirectoryCommand{Directory: "./curriculum", DeleteOrphaned: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(svc.syncCalls) != 1 {
		t.Fatalf("expected one sync call, got %d", len(svc.syncCalls))
	}
	if !svc.syncCalls[0].options.DeleteOrphaned {
		t.Fatalf("expected delete_orphaned to be forwarded, got %#v", svc.syncCalls[0].options)
	}
}

func TestSyncDirectoryHandlerWrapsServiceError(t *testing.T) {
	svc := &stubLessonService{syncErr: errors.New("boom")}
	handler := NewSyncDirectoryHandler(svc, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncDirectoryCommand{Directory: "./curriculum"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestImportOutlineHandlerForwardsOptions(t *testing.T) {
	svc := &stubOutlineService{importRecord: &interfaces.OutlineRecord{Code: "readme"}}
	handler := NewImportOutlineHandler(svc, nil, FeatureGates{})

	msg := ImportOutlineCommand{Path: "README.md", Code: "readme", DryRun: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(svc.importCalls) != 1 {
		t.Fatalf("expected one import call, got %d", len(svc.importCalls))
	}
	call := svc.importCalls[0]
	if call.path != "README.md" || call.options.Code != "readme" || !call.options.DryRun {
		t.Fatalf("unexpected call %#v", call)
	}
}

func TestImportOutlineHandlerRespectsFeatureGate(t *testing.T) {
	svc := &stubOutlineService{}
	handler := NewImportOutlineHandler(svc, nil, FeatureGates{
		OutlineEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), ImportOutlineCommand{Path: "README.md"})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrOutlineFeatureDisabled) {
		t.Fatalf("expected ErrOutlineFeatureDisabled, got %v", err)
	}
}

func TestRegisterLessonCommandsBuildsHandlerSet(t *testing.T) {
	lessonSvc := &stubLessonService{}
	outlineSvc := &stubOutlineService{}

	set, err := RegisterLessonCommands(nil, lessonSvc, outlineSvc, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterLessonCommands: %v", err)
	}
	if set.Import == nil || set.Sync == nil || set.ImportOutline == nil {
		t.Fatalf("expected all handlers to be constructed, got %#v", set)
	}
}

func TestRegisterLessonCommandsRequiresServices(t *testing.T) {
	if _, err := RegisterLessonCommands(nil, nil, &stubOutlineService{}, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil lesson service")
	}
	if _, err := RegisterLessonCommands(nil, &stubLessonService{}, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil outline service")
	}
}
