package checkercmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-curriculum/internal/commands"
	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

const runCheckOperation = "checker.run_check"

var (
	// ErrCheckerFeatureDisabled is returned when the checker feature flag is disabled at runtime.
	ErrCheckerFeatureDisabled = errors.New("checker command: feature disabled")
	// ErrCheckFailed is returned when a check run reports failing issues.
	ErrCheckFailed = errors.New("checker command: properties failed")
)

var _ command.Commander[RunCheckCommand] = (*RunCheckHandler)(nil)

// ReportSink receives the check report produced by a run. Handlers invoke it
// before deciding pass or fail, so callers can render the full report even
// when the run errors.
type ReportSink func(ctx context.Context, report *interfaces.CheckReport)

// RunCheckHandler executes property checks via the shared command handler foundation.
type RunCheckHandler struct {
	inner *commands.Handler[RunCheckCommand]
}

// NewRunCheckHandler creates a handler bound to the supplied checker service.
// The optional sink observes every produced report.
func NewRunCheckHandler(service interfaces.CheckerService, logger interfaces.Logger, gates FeatureGates, sink ReportSink, opts ...commands.HandlerOption[RunCheckCommand]) *RunCheckHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RunCheckCommand) error {
		if !gates.checkerEnabled() {
			return ErrCheckerFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := service.Check(ctx, interfaces.CheckOptions{
			LessonsDir: msg.LessonsDir,
			IndexPath:  msg.IndexPath,
			Properties: msg.Properties,
		})
		if err != nil {
			return err
		}
		if report == nil {
			return nil
		}

		if sink != nil {
			sink(ctx, report)
		}

		errorCount := report.CountBySeverity(interfaces.SeverityError)
		warningCount := report.CountBySeverity(interfaces.SeverityWarning)
		logging.WithFields(baseLogger, map[string]any{
			"lesson_count":  report.Lessons,
			"error_count":   errorCount,
			"warning_count": warningCount,
		}).Info("checker.command.run_check.completed")

		if errorCount > 0 {
			return fmt.Errorf("%w: %d errors", ErrCheckFailed, errorCount)
		}
		if msg.FailOnWarnings && warningCount > 0 {
			return fmt.Errorf("%w: %d warnings", ErrCheckFailed, warningCount)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RunCheckCommand]{
		commands.WithLogger[RunCheckCommand](baseLogger),
		commands.WithOperation[RunCheckCommand](runCheckOperation),
		commands.WithMessageFields(func(msg RunCheckCommand) map[string]any {
			fields := map[string]any{}
			if msg.LessonsDir != "" {
				fields["lessons_dir"] = msg.LessonsDir
			}
			if msg.IndexPath != "" {
				fields["index_path"] = msg.IndexPath
			}
			if len(msg.Properties) > 0 {
				fields["properties"] = msg.Properties
			}
			if msg.FailOnWarnings {
				fields["fail_on_warnings"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RunCheckCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RunCheckHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RunCheckCommand].
func (h *RunCheckHandler) Execute(ctx context.Context, msg RunCheckCommand) error {
	return h.inner.Execute(ctx, msg)
}
