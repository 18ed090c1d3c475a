package lessonscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-curriculum/internal/commands"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the lesson command handlers produced by RegisterLessonCommands.
type HandlerSet struct {
	Import        *ImportDirectoryHandler
	Sync          *SyncDirectoryHandler
	ImportOutline *ImportOutlineHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts  []commands.HandlerOption[ImportDirectoryCommand]
	syncHandlerOpts    []commands.HandlerOption[SyncDirectoryCommand]
	outlineHandlerOpts []commands.HandlerOption[ImportOutlineCommand]
}

// WithImportHandlerOptions forwards options to the ImportDirectoryHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the SyncDirectoryHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithOutlineHandlerOptions forwards options to the ImportOutlineHandler constructor.
func WithOutlineHandlerOptions(opts ...commands.HandlerOption[ImportOutlineCommand]) Option {
	return func(cfg *options) {
		cfg.outlineHandlerOpts = append(cfg.outlineHandlerOpts, opts...)
	}
}

// RegisterLessonCommands builds lesson command handlers and registers them with the provided
// registry. A HandlerSet containing the constructed handlers is returned so callers can wire
// additional integrations (dispatcher, cron) as needed.
func RegisterLessonCommands(reg CommandRegistry, lessonSvc interfaces.LessonService, outlineSvc interfaces.OutlineService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if lessonSvc == nil {
		return nil, errors.New("lessons command registration: lesson service is nil")
	}
	if outlineSvc == nil {
		return nil, errors.New("lessons command registration: outline service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "lessons")

	importHandler := NewImportDirectoryHandler(lessonSvc, logger, gates, cfg.importHandlerOpts...)
	syncHandler := NewSyncDirectoryHandler(lessonSvc, logger, gates, cfg.syncHandlerOpts...)
	outlineHandler := NewImportOutlineHandler(outlineSvc, logger, gates, cfg.outlineHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(importHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(syncHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(outlineHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Import:        importHandler,
		Sync:          syncHandler,
		ImportOutline: outlineHandler,
	}, nil
}

// RegisterSyncCron wires the provided sync handler into a cron registrar using the supplied
// command configuration and message payload. The handler is executed with a background context.
func RegisterSyncCron(reg CronRegistrar, handler *SyncDirectoryHandler, cfg command.HandlerConfig, msg SyncDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
