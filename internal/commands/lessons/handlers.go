package lessonscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-curriculum/internal/commands"
	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

const (
	importOperation        = "lessons.import_directory"
	syncOperation          = "lessons.sync_directory"
	importOutlineOperation = "lessons.import_outline"
)

var (
	// ErrLessonsFeatureDisabled is returned when the lessons feature flag is disabled at runtime.
	ErrLessonsFeatureDisabled = errors.New("lessons command: feature disabled")
	// ErrOutlineFeatureDisabled is returned when the outline feature flag is disabled at runtime.
	ErrOutlineFeatureDisabled = errors.New("outline command: feature disabled")
)

var (
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
	_ command.Commander[SyncDirectoryCommand]   = (*SyncDirectoryHandler)(nil)
	_ command.Commander[ImportOutlineCommand]   = (*ImportOutlineHandler)(nil)
)

// ImportDirectoryHandler orchestrates lesson directory imports via the shared command handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied lesson service.
func NewImportDirectoryHandler(service interfaces.LessonService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.lessonsEnabled() {
			return ErrLessonsFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.ImportDirectory(ctx, msg.Directory, interfaces.LessonImportOptions{
			DryRun:        msg.DryRun,
			IncludeDrafts: msg.IncludeDrafts,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": len(result.CreatedIDs),
				"updated_count": len(result.UpdatedIDs),
				"skipped_count": len(result.SkippedIDs),
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("lessons.command.import_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler orchestrates lesson sync workflows via the shared command handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied lesson service.
func NewSyncDirectoryHandler(service interfaces.LessonService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		if !gates.lessonsEnabled() {
			return ErrLessonsFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.Sync(ctx, msg.Directory, interfaces.LessonSyncOptions{
			LessonImportOptions: interfaces.LessonImportOptions{
				DryRun:        msg.DryRun,
				IncludeDrafts: msg.IncludeDrafts,
			},
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":  result.Created,
				"updated_count":  result.Updated,
				"deleted_count":  result.Deleted,
				"skipped_count":  result.Skipped,
				"error_count":    len(result.Errors),
				"dry_run":        msg.DryRun,
				"delete_orphans": msg.DeleteOrphaned,
			}).Info("lessons.command.sync_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportOutlineHandler parses and persists curriculum outlines via the shared command handler foundation.
type ImportOutlineHandler struct {
	inner *commands.Handler[ImportOutlineCommand]
}

// NewImportOutlineHandler creates a handler bound to the supplied outline service.
func NewImportOutlineHandler(service interfaces.OutlineService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportOutlineCommand]) *ImportOutlineHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportOutlineCommand) error {
		if !gates.outlineEnabled() {
			return ErrOutlineFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := service.Import(ctx, msg.Path, interfaces.OutlineImportOptions{
			Code:   msg.Code,
			DryRun: msg.DryRun,
		})
		if err != nil {
			return err
		}
		if record != nil {
			entries := 0
			for _, level := range record.Levels {
				entries += len(level.Entries)
			}
			logging.WithFields(baseLogger, map[string]any{
				"outline_code": record.Code,
				"level_count":  len(record.Levels),
				"entry_count":  entries,
				"dry_run":      msg.DryRun,
			}).Info("lessons.command.import_outline.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportOutlineCommand]{
		commands.WithLogger[ImportOutlineCommand](baseLogger),
		commands.WithOperation[ImportOutlineCommand](importOutlineOperation),
		commands.WithMessageFields(func(msg ImportOutlineCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.Code != "" {
				fields["outline_code"] = msg.Code
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportOutlineCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportOutlineHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportOutlineCommand].
func (h *ImportOutlineHandler) Execute(ctx context.Context, msg ImportOutlineCommand) error {
	return h.inner.Execute(ctx, msg)
}
