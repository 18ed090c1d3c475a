package lessons

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/internal/validation"
	"github.com/goliatone/go-curriculum/lessons"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// ServiceConfig wires the lesson service with its collaborators.
type ServiceConfig struct {
	Markdown interfaces.MarkdownService
	Repo     LessonRepository
	Logger   interfaces.Logger
	// MetadataSchema validates frontmatter custom keys on import when set.
	MetadataSchema map[string]any
	// ParseOptions configure HTML rendering during import.
	ParseOptions interfaces.ParseOptions
}

// Service implements interfaces.LessonService on top of the Markdown pipeline
// and a lesson repository.
type Service struct {
	markdown       interfaces.MarkdownService
	repo           LessonRepository
	logger         interfaces.Logger
	metadataSchema map[string]any
	parseOptions   interfaces.ParseOptions
}

// NewService builds a lesson service. The repository may be nil for read-only
// Load workflows; persistence operations then fail with ErrRepositoryNotSet.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Markdown == nil {
		return nil, fmt.Errorf("lessons: markdown service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	if cfg.MetadataSchema != nil {
		if err := validation.ValidateSchema(cfg.MetadataSchema); err != nil {
			return nil, fmt.Errorf("lessons: %w", err)
		}
	}

	return &Service{
		markdown:       cfg.Markdown,
		repo:           cfg.Repo,
		logger:         logger,
		metadataSchema: cfg.MetadataSchema,
		parseOptions:   cfg.ParseOptions,
	}, nil
}

// Load parses a single lesson file without touching the repository.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.LessonRecord, error) {
	doc, err := s.markdown.Load(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	lesson, err := s.buildFromDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	return toRecord(lesson), nil
}

// LoadDirectory parses every lesson_N.md file under dir, ordered by ordinal.
// Two files claiming the same ordinal fail the whole load.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.LessonRecord, error) {
	models, err := s.loadModels(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	records := make([]*interfaces.LessonRecord, 0, len(models))
	for _, lesson := range models {
		records = append(records, toRecord(lesson))
	}
	return records, nil
}

// ImportDirectory persists lesson files, creating new records and updating
// changed ones. Unchanged files (matching checksum) are skipped.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts interfaces.LessonImportOptions) (*interfaces.LessonImportResult, error) {
	if s.repo == nil {
		return nil, lessons.ErrRepositoryNotSet
	}

	models, err := s.loadModels(ctx, dir, interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}

	result := &interfaces.LessonImportResult{}
	for _, lesson := range models {
		s.importOne(ctx, lesson, opts, result)
	}

	s.logger.Info("lesson import finished",
		"dir", dir,
		"created", len(result.CreatedIDs),
		"updated", len(result.UpdatedIDs),
		"skipped", len(result.SkippedIDs),
		"errors", len(result.Errors),
	)
	return result, nil
}

// Sync imports the directory and optionally deletes persisted lessons whose
// source file disappeared.
func (s *Service) Sync(ctx context.Context, dir string, opts interfaces.LessonSyncOptions) (*interfaces.LessonSyncResult, error) {
	if s.repo == nil {
		return nil, lessons.ErrRepositoryNotSet
	}

	importResult, err := s.ImportDirectory(ctx, dir, opts.LessonImportOptions)
	if err != nil {
		return nil, err
	}

	result := &interfaces.LessonSyncResult{
		Created: len(importResult.CreatedIDs),
		Updated: len(importResult.UpdatedIDs),
		Skipped: len(importResult.SkippedIDs),
		Errors:  importResult.Errors,
	}

	if !opts.DeleteOrphaned {
		return result, nil
	}

	models, err := s.loadModels(ctx, dir, interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}
	present := make(map[int]struct{}, len(models))
	for _, lesson := range models {
		present[lesson.Ordinal] = struct{}{}
	}

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, lesson := range stored {
		if _, ok := present[lesson.Ordinal]; ok {
			continue
		}
		if opts.DryRun {
			result.Deleted++
			continue
		}
		if err := s.repo.Delete(ctx, lesson.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("delete lesson %d: %w", lesson.Ordinal, err))
			continue
		}
		result.Deleted++
		s.logger.Info("deleted orphaned lesson", "ordinal", lesson.Ordinal, "path", lesson.Path)
	}

	return result, nil
}

// Get retrieves a persisted lesson by identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*interfaces.LessonRecord, error) {
	if s.repo == nil {
		return nil, lessons.ErrRepositoryNotSet
	}
	lesson, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecord(lesson), nil
}

// GetByOrdinal retrieves a persisted lesson by its ordinal.
func (s *Service) GetByOrdinal(ctx context.Context, ordinal int) (*interfaces.LessonRecord, error) {
	if s.repo == nil {
		return nil, lessons.ErrRepositoryNotSet
	}
	lesson, err := s.repo.GetByOrdinal(ctx, ordinal)
	if err != nil {
		return nil, err
	}
	return toRecord(lesson), nil
}

// GetBySlug retrieves a persisted lesson by slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*interfaces.LessonRecord, error) {
	if s.repo == nil {
		return nil, lessons.ErrRepositoryNotSet
	}
	lesson, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toRecord(lesson), nil
}

// List returns every persisted lesson ordered by ordinal.
func (s *Service) List(ctx context.Context) ([]*interfaces.LessonRecord, error) {
	if s.repo == nil {
		return nil, lessons.ErrRepositoryNotSet
	}
	models, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*interfaces.LessonRecord, 0, len(models))
	for _, lesson := range models {
		records = append(records, toRecord(lesson))
	}
	return records, nil
}

func (s *Service) loadModels(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*lessons.Lesson, error) {
	if opts.Pattern == "" {
		opts.Pattern = "lesson_*.md"
	}

	docs, err := s.markdown.LoadDirectory(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	byOrdinal := make(map[int]*lessons.Lesson)
	models := make([]*lessons.Lesson, 0, len(docs))

	for _, doc := range docs {
		if !lessons.IsLessonFile(doc.FilePath) {
			continue
		}

		lesson, err := s.buildFromDocument(ctx, doc)
		if err != nil {
			return nil, err
		}

		if existing, ok := byOrdinal[lesson.Ordinal]; ok {
			return nil, &lessons.OrdinalConflictError{
				Ordinal: lesson.Ordinal,
				Paths:   []string{existing.Path, lesson.Path},
			}
		}

		byOrdinal[lesson.Ordinal] = lesson
		models = append(models, lesson)
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].Ordinal < models[j].Ordinal
	})
	return models, nil
}

func (s *Service) buildFromDocument(ctx context.Context, doc *interfaces.Document) (*lessons.Lesson, error) {
	structure, err := s.markdown.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}

	lesson, err := BuildLesson(doc, structure)
	if err != nil {
		return nil, err
	}

	if s.metadataSchema != nil {
		if err := validation.ValidateMetadata(s.metadataSchema, lesson.Metadata); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", lessons.ErrMetadataInvalid, lesson.Path, err)
		}
	}

	html, err := s.markdown.RenderDocument(ctx, doc, s.parseOptions)
	if err != nil {
		return nil, err
	}
	lesson.BodyHTML = string(html)

	return lesson, nil
}

func (s *Service) importOne(ctx context.Context, lesson *lessons.Lesson, opts interfaces.LessonImportOptions, result *interfaces.LessonImportResult) {
	logger := logging.WithLessonContext(s.logger, lesson.Path, lesson.Ordinal, "import")

	if lesson.Draft && !opts.IncludeDrafts {
		result.SkippedIDs = append(result.SkippedIDs, lesson.ID)
		logger.Debug("skipped draft lesson")
		return
	}

	existing, err := s.repo.GetByOrdinal(ctx, lesson.Ordinal)
	switch {
	case err == nil:
		if existing.Checksum == lesson.Checksum {
			result.SkippedIDs = append(result.SkippedIDs, existing.ID)
			logger.Debug("skipped unchanged lesson")
			return
		}
		if opts.DryRun {
			result.UpdatedIDs = append(result.UpdatedIDs, existing.ID)
			return
		}
		lesson.ID = existing.ID
		lesson.CreatedAt = existing.CreatedAt
		lesson.UpdatedAt = time.Now().UTC()
		updated, err := s.repo.Update(ctx, lesson)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("update lesson %d: %w", lesson.Ordinal, err))
			return
		}
		result.UpdatedIDs = append(result.UpdatedIDs, updated.ID)
		logger.Info("updated lesson", "title", updated.Title)

	case errors.Is(err, lessons.ErrLessonNotFound):
		if opts.DryRun {
			result.CreatedIDs = append(result.CreatedIDs, lesson.ID)
			return
		}
		now := time.Now().UTC()
		lesson.CreatedAt = now
		lesson.UpdatedAt = now
		created, err := s.repo.Create(ctx, lesson)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("create lesson %d: %w", lesson.Ordinal, err))
			return
		}
		result.CreatedIDs = append(result.CreatedIDs, created.ID)
		logger.Info("created lesson", "title", created.Title)

	default:
		result.Errors = append(result.Errors, fmt.Errorf("lookup lesson %d: %w", lesson.Ordinal, err))
	}
}

func toRecord(lesson *lessons.Lesson) *interfaces.LessonRecord {
	if lesson == nil {
		return nil
	}

	record := &interfaces.LessonRecord{
		ID:       lesson.ID,
		Ordinal:  lesson.Ordinal,
		Slug:     lesson.Slug,
		Title:    lesson.Title,
		Summary:  lesson.Summary,
		Path:     lesson.Path,
		Body:     lesson.Body,
		BodyHTML: lesson.BodyHTML,
		Checksum: lesson.Checksum,
		Tags:     append([]string(nil), lesson.Tags...),
		Draft:    lesson.Draft,
		Metadata: lesson.Metadata,
		Modified: lesson.SourceModified,
	}

	for _, section := range lesson.Sections {
		record.Sections = append(record.Sections, interfaces.LessonSectionRecord{
			Level: section.Level,
			Title: section.Title,
			Line:  section.Line,
		})
	}
	for _, sample := range lesson.Samples {
		record.Samples = append(record.Samples, interfaces.CodeSampleRecord{
			Language: sample.Language,
			Line:     sample.Line,
		})
	}

	return record
}
