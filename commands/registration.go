package commands

import (
	"errors"

	command "github.com/goliatone/go-command"

	internalcmd "github.com/goliatone/go-curriculum/internal/commands"
	checkercmd "github.com/goliatone/go-curriculum/internal/commands/checker"
	lessonscmd "github.com/goliatone/go-curriculum/internal/commands/lessons"
	"github.com/goliatone/go-curriculum/internal/di"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// ReportSink observes every check report produced by the checker handler.
	ReportSink checkercmd.ReportSink
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription

	Lessons *lessonscmd.HandlerSet
	Checker *checkercmd.HandlerSet
}

// CommandLogger returns a module-scoped logger for command handlers.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	return internalcmd.CommandLogger(provider, module)
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	// Lesson and outline commands.
	if lessonSvc, outlineSvc := container.LessonService(), container.OutlineService(); lessonSvc != nil && outlineSvc != nil && cfg.Features.Markdown {
		gates := lessonscmd.FeatureGates{
			LessonsEnabled: func() bool { return cfg.Features.Markdown },
			OutlineEnabled: func() bool { return cfg.Features.Markdown },
		}
		handlerSet, err := lessonscmd.RegisterLessonCommands(nil, lessonSvc, outlineSvc, provider, gates)
		if err != nil {
			errs = errors.Join(errs, err)
		} else if handlerSet != nil {
			result.Lessons = handlerSet
			register(handlerSet.Import)
			register(handlerSet.Sync)
			register(handlerSet.ImportOutline)
		}
	}

	// Checker commands.
	if service := container.CheckerService(); service != nil && cfg.Features.Checker {
		gates := checkercmd.FeatureGates{
			CheckerEnabled: func() bool { return cfg.Features.Checker },
		}
		checkerOpts := []checkercmd.Option{}
		if opts.ReportSink != nil {
			checkerOpts = append(checkerOpts, checkercmd.WithReportSink(opts.ReportSink))
		}
		handlerSet, err := checkercmd.RegisterCheckerCommands(nil, service, provider, gates, checkerOpts...)
		if err != nil {
			errs = errors.Join(errs, err)
		} else if handlerSet != nil {
			result.Checker = handlerSet
			register(handlerSet.RunCheck)
		}
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}
