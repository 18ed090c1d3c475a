package commands

import (
	"testing"
	"testing/fstest"
	"time"

	checkercmd "github.com/goliatone/go-curriculum/internal/commands/checker"
	"github.com/goliatone/go-curriculum/internal/di"
	"github.com/goliatone/go-curriculum/internal/runtimeconfig"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingSubscription struct {
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}

type recordingDispatcher struct {
	subscriptions []*recordingSubscription
}

func (d *recordingDispatcher) RegisterCommand(any) (CommandSubscription, error) {
	sub := &recordingSubscription{}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

func commandTestConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Lessons.Dir = "."
	cfg.Cache.Enabled = false
	cfg.Features.Markdown = true
	cfg.Features.Checker = true
	return cfg
}

func commandTestFS() fstest.MapFS {
	return fstest.MapFS{
		"README.md": &fstest.MapFile{
			Data:    []byte("# Vue.js Curriculum\n\n## Level 1: Fundamentals\n\n- [Lesson 1: Getting Started](lesson_1.md)\n"),
			ModTime: time.Now().UTC(),
		},
		"lesson_1.md": &fstest.MapFile{
			Data:    []byte("# Lesson 1: Getting Started\n\n## Prerequisites\n\nNode.js 18.\n"),
			ModTime: time.Now().UTC(),
		},
	}
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}

	container, err := di.NewContainer(commandTestConfig(), di.WithFS(commandTestFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatcher,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 4 {
		t.Fatalf("expected import/sync/outline/check handlers, got %d", len(result.Handlers))
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected dispatcher subscriptions for every handler, got %d", len(dispatcher.subscriptions))
	}
	if result.Lessons == nil || result.Lessons.Import == nil || result.Lessons.Sync == nil || result.Lessons.ImportOutline == nil {
		t.Fatalf("expected lesson handler set, got %#v", result.Lessons)
	}
	if result.Checker == nil || result.Checker.RunCheck == nil {
		t.Fatalf("expected checker handler set, got %#v", result.Checker)
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	container, err := di.NewContainer(commandTestConfig(), di.WithFS(commandTestFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be built even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsSkipsCheckerWhenDisabled(t *testing.T) {
	cfg := commandTestConfig()
	cfg.Features.Checker = false
	cfg.Checker = runtimeconfig.CheckerConfig{}

	container, err := di.NewContainer(cfg, di.WithFS(commandTestFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	for _, handler := range result.Handlers {
		if _, ok := handler.(*checkercmd.RunCheckHandler); ok {
			t.Fatal("expected checker handler to be skipped when the feature is disabled")
		}
	}
	if result.Checker != nil {
		t.Fatalf("expected no checker handler set, got %#v", result.Checker)
	}
}

func TestRegisterContainerCommandsRequiresEnabledFeatures(t *testing.T) {
	cfg := commandTestConfig()
	cfg.Features.Markdown = false
	cfg.Features.Checker = false
	cfg.Checker = runtimeconfig.CheckerConfig{}

	container, err := di.NewContainer(cfg, di.WithFS(commandTestFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if _, err := RegisterContainerCommands(container, RegistrationOptions{}); err == nil {
		t.Fatal("expected error when no features enable any handler")
	}
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers for nil container, got %d", len(result.Handlers))
	}
}
