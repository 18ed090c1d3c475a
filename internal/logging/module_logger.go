package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

const (
	rootModule     = "curriculum"
	lessonsModule  = "curriculum.lessons"
	outlineModule  = "curriculum.outline"
	checkerModule  = "curriculum.checker"
	markdownModule = "curriculum.markdown"
)

const (
	fieldLessonPath    = "lesson_path"
	fieldLessonOrdinal = "ordinal"
	fieldSyncAction    = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LessonsLogger returns the logger namespace reserved for lesson services.
func LessonsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lessonsModule)
}

// OutlineLogger returns the logger namespace reserved for outline services.
func OutlineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, outlineModule)
}

// CheckerLogger returns the logger namespace reserved for the structural checker.
func CheckerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, checkerModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithLessonContext enriches the provided logger with common lesson fields
// such as file path, ordinal, and sync action. Empty values are ignored.
func WithLessonContext(logger interfaces.Logger, path string, ordinal int, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldLessonPath] = trimmed
	}
	if ordinal > 0 {
		fields[fieldLessonOrdinal] = ordinal
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldSyncAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
