// Package bootstrap shares module construction across the curriculum CLI
// commands so each entrypoint only parses flags and invokes a handler.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	curriculum "github.com/goliatone/go-curriculum"
	"github.com/goliatone/go-curriculum/internal/di"
	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// Options captures the tunable configuration shared across CLI commands.
type Options struct {
	LessonsDir     string
	Pattern        string
	Recursive      bool
	IndexFile      string
	OutlineCode    string
	EnableChecker  bool
	DBDriver       string
	DBDSN          string
	LoggerProvider interfaces.LoggerProvider
}

// Module groups the runtime services the CLI commands operate on.
type Module struct {
	Module  *curriculum.Module
	Lessons interfaces.LessonService
	Outline interfaces.OutlineService
	Checker interfaces.CheckerService
	Logger  interfaces.Logger
}

// BuildModule constructs a curriculum module configured for CLI use.
func BuildModule(opts Options) (*Module, error) {
	cfg := curriculum.DefaultConfig()

	cfg.Features.Markdown = true
	cfg.Features.Checker = opts.EnableChecker
	cfg.Markdown.Enabled = true
	cfg.Cache.Enabled = false

	if dir := strings.TrimSpace(opts.LessonsDir); dir != "" {
		cfg.Lessons.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Lessons.Pattern = pattern
	}
	cfg.Lessons.Recursive = opts.Recursive

	if index := strings.TrimSpace(opts.IndexFile); index != "" {
		cfg.Outline.IndexFile = index
	}
	if code := strings.TrimSpace(opts.OutlineCode); code != "" {
		cfg.Outline.Code = code
	}

	if dsn := strings.TrimSpace(opts.DBDSN); dsn != "" {
		cfg.Storage.DSN = dsn
		if driver := strings.TrimSpace(opts.DBDriver); driver != "" {
			cfg.Storage.Driver = driver
		}
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		cfg.Features.Logger = true
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := curriculum.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise curriculum module: %w", err)
	}

	if db := module.Container().DB(); db != nil {
		if err := curriculum.CreateSchema(context.Background(), db); err != nil {
			return nil, fmt.Errorf("create curriculum schema: %w", err)
		}
	}

	lessonSvc := module.Lessons()
	if lessonSvc == nil {
		return nil, fmt.Errorf("lesson service not configured")
	}

	logger := logging.LessonsLogger(module.Container().LoggerProvider())

	return &Module{
		Module:  module,
		Lessons: lessonSvc,
		Outline: module.Outline(),
		Checker: module.Checker(),
		Logger:  logger,
	}, nil
}

// SplitList parses a comma separated flag value into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
