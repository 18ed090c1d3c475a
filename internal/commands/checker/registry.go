package checkercmd

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

// HandlerSet groups the checker command handlers produced by RegisterCheckerCommands.
type HandlerSet struct {
	RunCheck *RunCheckHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	sink            ReportSink
	runCheckOptions []commands.HandlerOption[RunCheckCommand]
}

// WithReportSink installs a callback that observes every produced check report.
func WithReportSink(sink ReportSink) Option {
	return func(cfg *options) {
		cfg.sink = sink
	}
}

// WithRunCheckOptions forwards options to the RunCheckHandler constructor.
func WithRunCheckOptions(opts ...commands.HandlerOption[RunCheckCommand]) Option {
	return func(cfg *options) {
		cfg.runCheckOptions = append(cfg.runCheckOptions, opts...)
	}
}

// RegisterCheckerCommands builds checker command handlers and registers them with the
// provided registry. A HandlerSet containing the constructed handlers is returned so
// callers can wire additional integrations (dispatcher, cron) as needed.
func RegisterCheckerCommands(reg CommandRegistry, service interfaces.CheckerService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("checker command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "checker")

	runCheck := NewRunCheckHandler(service, logger, gates, cfg.sink, cfg.runCheckOptions...)

	if reg != nil {
		if err := reg.RegisterCommand(runCheck); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{RunCheck: runCheck}, nil
}

// RegisterCheckCron wires the provided check handler into a cron registrar using the
// supplied command configuration and message payload. The handler is executed with a
// background context.
func RegisterCheckCron(reg CronRegistrar, handler *RunCheckHandler, cfg command.HandlerConfig, msg RunCheckCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
