package outline

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/outline"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// EntryResolver resolves outline entries into absolute URLs for rendered
// sites. URLKitResolver is the production implementation.
type EntryResolver interface {
	Resolve(ctx context.Context, entry interfaces.OutlineEntryRecord) (string, error)
}

// ServiceConfig wires the outline service with its collaborators.
type ServiceConfig struct {
	Markdown interfaces.MarkdownService
	Repo     OutlineRepository
	Resolver EntryResolver
	Logger   interfaces.Logger
}

// Service implements interfaces.OutlineService.
type Service struct {
	markdown interfaces.MarkdownService
	repo     OutlineRepository
	resolver EntryResolver
	logger   interfaces.Logger
}

// NewService builds an outline service. The repository may be nil for
// read-only Load workflows.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Markdown == nil {
		return nil, fmt.Errorf("outline: markdown service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Service{
		markdown: cfg.Markdown,
		repo:     cfg.Repo,
		resolver: cfg.Resolver,
		logger:   logger,
	}, nil
}

// Load parses the index document at path without touching the repository.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.OutlineRecord, error) {
	model, err := s.loadModel(ctx, path, outline.DefaultCode)
	if err != nil {
		return nil, err
	}
	return toRecord(model), nil
}

// Import parses and persists the index document.
func (s *Service) Import(ctx context.Context, path string, opts interfaces.OutlineImportOptions) (*interfaces.OutlineRecord, error) {
	model, err := s.loadModel(ctx, path, opts.Code)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return toRecord(model), nil
	}

	if s.repo == nil {
		return nil, outline.ErrRepositoryNotSet
	}

	stored, err := s.repo.Upsert(ctx, model)
	if err != nil {
		return nil, err
	}

	s.logger.Info("imported outline",
		"code", stored.Code,
		"path", stored.Path,
		"levels", len(stored.Levels),
	)
	return toRecord(stored), nil
}

// Get retrieves a persisted outline by code.
func (s *Service) Get(ctx context.Context, code string) (*interfaces.OutlineRecord, error) {
	if s.repo == nil {
		return nil, outline.ErrRepositoryNotSet
	}
	if strings.TrimSpace(code) == "" {
		code = outline.DefaultCode
	}
	model, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toRecord(model), nil
}

// ResolveEntryURL resolves an entry into a URL. Without a configured resolver
// the relative target is returned as authored, which is already a valid link
// in rendered output living next to the lesson files.
func (s *Service) ResolveEntryURL(ctx context.Context, entry interfaces.OutlineEntryRecord) (string, error) {
	if s.resolver == nil {
		return entry.Target, nil
	}
	return s.resolver.Resolve(ctx, entry)
}

func (s *Service) loadModel(ctx context.Context, path, code string) (*outline.Outline, error) {
	if strings.TrimSpace(path) == "" {
		return nil, outline.ErrPathRequired
	}

	doc, err := s.markdown.Load(ctx, path, interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}

	structure, err := s.markdown.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}

	model, err := ParseOutline(doc, structure, code)
	if err != nil {
		return nil, err
	}
	model.Checksum = fmt.Sprintf("%x", doc.Checksum)
	return model, nil
}

func toRecord(model *outline.Outline) *interfaces.OutlineRecord {
	if model == nil {
		return nil
	}

	record := &interfaces.OutlineRecord{
		ID:    model.ID,
		Code:  model.Code,
		Path:  model.Path,
		Title: model.Title,
	}

	for _, level := range model.Levels {
		levelRecord := interfaces.OutlineLevelRecord{
			ID:       level.ID,
			Position: level.Position,
			Title:    level.Title,
			Goal:     level.Goal,
		}
		for _, entry := range level.Entries {
			levelRecord.Entries = append(levelRecord.Entries, interfaces.OutlineEntryRecord{
				ID:       entry.ID,
				Position: entry.Position,
				Label:    entry.Label,
				Target:   entry.Target,
				Ordinal:  entry.Ordinal,
			})
		}
		record.Levels = append(record.Levels, levelRecord)
	}

	return record
}
