package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	// ErrCheckerFeatureRequired indicates checker config without the feature flag.
	ErrCheckerFeatureRequired = errors.New("curriculum config: checker feature must be enabled to configure the checker")
	// ErrLessonsDirRequired ensures imports have a source directory.
	ErrLessonsDirRequired = errors.New("curriculum config: lessons directory is required when markdown is enabled")
	ErrIndexFileRequired  = errors.New("curriculum config: outline index file is required when the checker is enabled")
	ErrCacheTTLInvalid    = errors.New("curriculum config: cache ttl must be zero or positive")

	ErrLoggingProviderRequired = errors.New("curriculum config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("curriculum config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("curriculum config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("curriculum config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the curriculum
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled    bool
	Lessons    LessonsConfig
	Outline    OutlineConfig
	Checker    CheckerConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Features   Features
	Commands   CommandsConfig
	Markdown   MarkdownConfig
	Logging    LoggingConfig
}

// LessonsConfig captures filesystem behaviour for lesson discovery.
type LessonsConfig struct {
	// Dir is the directory holding lesson_N.md files.
	Dir string
	// Pattern limits discovery; defaults to "*.md".
	Pattern   string
	Recursive bool
	// IncludeDrafts imports frontmatter-flagged drafts.
	IncludeDrafts bool
	// MetadataSchema overrides the built-in frontmatter JSON schema.
	MetadataSchema map[string]any
}

// OutlineConfig captures where the curriculum index lives.
type OutlineConfig struct {
	// IndexFile is the index document, relative to the lessons directory.
	IndexFile string
	// Code names the stored outline record.
	Code string
	// ExpectedLevels pins the number of levels the index must define; zero
	// disables the check.
	ExpectedLevels int
}

// CheckerConfig tunes the structural checker.
type CheckerConfig struct {
	// Properties limits default runs to the named property codes (p1..p5).
	Properties []string
	// FailOnWarnings promotes warnings to a failing report.
	FailOnWarnings bool
}

// StorageConfig lists identifiers for storage-related dependencies. When DSN
// is set the container opens a database with the named driver instead of the
// in-memory repositories.
type StorageConfig struct {
	Provider string
	// Driver selects the sql driver, "sqlite" or "postgres".
	Driver string
	DSN    string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for entry URL resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	Group        string
	Route        string
	OrdinalParam string
	SlugParam    string
}

// Features toggles module functionality.
type Features struct {
	Markdown bool
	Checker  bool
	Logger   bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
}

// MarkdownConfig captures parser behaviour for Markdown rendering.
type MarkdownConfig struct {
	Enabled bool
	Parser  MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an embedded curriculum module.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Lessons: LessonsConfig{
			Dir:       "lessons",
			Pattern:   "*.md",
			Recursive: false,
		},
		Outline: OutlineConfig{
			IndexFile:      "README.md",
			Code:           "readme",
			ExpectedLevels: 0,
		},
		Checker: CheckerConfig{},
		Storage: StorageConfig{
			Provider: "bun",
			Driver:   "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{},
		Features:   Features{},
		Commands:   CommandsConfig{},
		Markdown: MarkdownConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Markdown.Enabled && strings.TrimSpace(cfg.Lessons.Dir) == "" {
		return ErrLessonsDirRequired
	}
	if cfg.Features.Checker {
		if strings.TrimSpace(cfg.Outline.IndexFile) == "" {
			return ErrIndexFileRequired
		}
	} else if len(cfg.Checker.Properties) > 0 || cfg.Checker.FailOnWarnings {
		return ErrCheckerFeatureRequired
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
