package di

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	checkersvc "github.com/goliatone/go-curriculum/internal/checker"
	lessonssvc "github.com/goliatone/go-curriculum/internal/lessons"
	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/internal/logging/console"
	"github.com/goliatone/go-curriculum/internal/logging/gologger"
	markdownsvc "github.com/goliatone/go-curriculum/internal/markdown"
	outlinesvc "github.com/goliatone/go-curriculum/internal/outline"
	"github.com/goliatone/go-curriculum/internal/runtimeconfig"
	"github.com/goliatone/go-curriculum/internal/storage"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// Container wires module dependencies. Repositories default to in-memory
// implementations and switch to bun-backed ones when a database is supplied.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	fsys           fs.FS
	loggerProvider interfaces.LoggerProvider

	lessonRepo    lessonssvc.LessonRepository
	outlineRepo   outlinesvc.OutlineRepository
	entryResolver outlinesvc.EntryResolver
	routeManager  *urlkit.RouteManager

	markdownSvc interfaces.MarkdownService
	lessonSvc   interfaces.LessonService
	outlineSvc  interfaces.OutlineService
	checkerSvc  interfaces.CheckerService
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches repositories to the bun-backed implementations.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithFS overrides the filesystem the markdown pipeline reads from,
// primarily for tests.
func WithFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.fsys = fsys
	}
}

// WithLoggerProvider overrides the logger provider built from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLessonRepository overrides the default lesson repository binding.
func WithLessonRepository(repo lessonssvc.LessonRepository) Option {
	return func(c *Container) {
		c.lessonRepo = repo
	}
}

// WithOutlineRepository overrides the default outline repository binding.
func WithOutlineRepository(repo outlinesvc.OutlineRepository) Option {
	return func(c *Container) {
		c.outlineRepo = repo
	}
}

// WithEntryResolver overrides the navigation-based entry URL resolver.
func WithEntryResolver(resolver outlinesvc.EntryResolver) Option {
	return func(c *Container) {
		c.entryResolver = resolver
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithLessonService overrides the default lesson service binding.
func WithLessonService(svc interfaces.LessonService) Option {
	return func(c *Container) {
		c.lessonSvc = svc
	}
}

// WithOutlineService overrides the default outline service binding.
func WithOutlineService(svc interfaces.OutlineService) Option {
	return func(c *Container) {
		c.outlineSvc = svc
	}
}

// WithCheckerService overrides the default checker service binding.
func WithCheckerService(svc interfaces.CheckerService) Option {
	return func(c *Container) {
		c.checkerSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:      cfg,
		cacheTTL:    cacheTTL,
		lessonRepo:  lessonssvc.NewMemoryLessonRepository(),
		outlineRepo: outlinesvc.NewMemoryOutlineRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	c.configureNavigation()

	if err := c.configureServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
			return
		}
		c.loggerProvider = console.NewProvider(console.Options{})
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cacheCfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	if c.bunDB == nil && strings.TrimSpace(c.Config.Storage.DSN) != "" {
		db, err := storage.Open(c.Config.Storage.Driver, c.Config.Storage.DSN)
		if err != nil {
			return fmt.Errorf("di: open storage: %w", err)
		}
		c.bunDB = db
	}
	if c.bunDB == nil {
		return nil
	}
	c.lessonRepo = lessonssvc.NewBunLessonRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.outlineRepo = outlinesvc.NewBunOutlineRepository(c.bunDB)
	return nil
}

func (c *Container) configureNavigation() {
	if c.entryResolver != nil {
		return
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(navCfg.RouteConfig)
	c.routeManager = manager

	c.entryResolver = outlinesvc.NewURLKitResolver(outlinesvc.URLKitResolverOptions{
		Manager:      manager,
		Group:        strings.TrimSpace(navCfg.URLKit.Group),
		Route:        strings.TrimSpace(navCfg.URLKit.Route),
		OrdinalParam: strings.TrimSpace(navCfg.URLKit.OrdinalParam),
		SlugParam:    strings.TrimSpace(navCfg.URLKit.SlugParam),
	})
}

func (c *Container) configureServices() error {
	if c.markdownSvc == nil {
		c.markdownSvc = markdownsvc.NewService(markdownsvc.ServiceConfig{
			BasePath:  c.Config.Lessons.Dir,
			Pattern:   c.Config.Lessons.Pattern,
			Recursive: c.Config.Lessons.Recursive,
			FS:        c.fsys,
			ParserDefaults: interfaces.ParseOptions{
				Extensions: c.Config.Markdown.Parser.Extensions,
				Sanitize:   c.Config.Markdown.Parser.Sanitize,
				HardWraps:  c.Config.Markdown.Parser.HardWraps,
				SafeMode:   c.Config.Markdown.Parser.SafeMode,
			},
			Logger: logging.MarkdownLogger(c.loggerProvider),
		})
	}

	if c.lessonSvc == nil {
		svc, err := lessonssvc.NewService(lessonssvc.ServiceConfig{
			Markdown:       c.markdownSvc,
			Repo:           c.lessonRepo,
			Logger:         logging.LessonsLogger(c.loggerProvider),
			MetadataSchema: c.Config.Lessons.MetadataSchema,
			ParseOptions: interfaces.ParseOptions{
				Extensions: c.Config.Markdown.Parser.Extensions,
				Sanitize:   c.Config.Markdown.Parser.Sanitize,
				HardWraps:  c.Config.Markdown.Parser.HardWraps,
				SafeMode:   c.Config.Markdown.Parser.SafeMode,
			},
		})
		if err != nil {
			return fmt.Errorf("di: lesson service: %w", err)
		}
		c.lessonSvc = svc
	}

	if c.outlineSvc == nil {
		svc, err := outlinesvc.NewService(outlinesvc.ServiceConfig{
			Markdown: c.markdownSvc,
			Repo:     c.outlineRepo,
			Resolver: c.entryResolver,
			Logger:   logging.OutlineLogger(c.loggerProvider),
		})
		if err != nil {
			return fmt.Errorf("di: outline service: %w", err)
		}
		c.outlineSvc = svc
	}

	if c.checkerSvc == nil && c.Config.Features.Checker {
		svc, err := checkersvc.NewService(checkersvc.ServiceConfig{
			Markdown:  c.markdownSvc,
			Logger:    logging.CheckerLogger(c.loggerProvider),
			IndexPath: c.Config.Outline.IndexFile,
		})
		if err != nil {
			return fmt.Errorf("di: checker service: %w", err)
		}
		c.checkerSvc = svc
	}

	return nil
}

// DB exposes the bun handle when one was supplied or opened from storage
// configuration, nil otherwise.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider exposes the configured logger provider, possibly nil when
// logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// RouteManager exposes the navigation route manager when one was configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// LessonRepository exposes the configured lesson repository.
func (c *Container) LessonRepository() lessonssvc.LessonRepository {
	return c.lessonRepo
}

// OutlineRepository exposes the configured outline repository.
func (c *Container) OutlineRepository() outlinesvc.OutlineRepository {
	return c.outlineRepo
}

// MarkdownService returns the configured markdown service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// LessonService returns the configured lesson service.
func (c *Container) LessonService() interfaces.LessonService {
	return c.lessonSvc
}

// OutlineService returns the configured outline service.
func (c *Container) OutlineService() interfaces.OutlineService {
	return c.outlineSvc
}

// CheckerService returns the configured checker service, nil unless the
// checker feature is enabled.
func (c *Container) CheckerService() interfaces.CheckerService {
	return c.checkerSvc
}
