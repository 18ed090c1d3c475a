package curriculum

import (
	"github.com/goliatone/go-curriculum/internal/di"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// Module represents the top level curriculum runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a curriculum module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markdown returns the markdown service shared by the lesson pipeline.
func (m *Module) Markdown() interfaces.MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Lessons returns the configured lesson service.
func (m *Module) Lessons() interfaces.LessonService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LessonService()
}

// Outline returns the configured outline service.
func (m *Module) Outline() interfaces.OutlineService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.OutlineService()
}

// Checker returns the structural checker when the feature is enabled.
func (m *Module) Checker() interfaces.CheckerService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CheckerService()
}

// LoggerProvider returns the logger provider the module was built with.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}
