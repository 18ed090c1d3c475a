package curriculum

import "github.com/goliatone/go-curriculum/internal/runtimeconfig"

var (
	ErrCheckerFeatureRequired  = runtimeconfig.ErrCheckerFeatureRequired
	ErrLessonsDirRequired      = runtimeconfig.ErrLessonsDirRequired
	ErrIndexFileRequired       = runtimeconfig.ErrIndexFileRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	LessonsConfig        = runtimeconfig.LessonsConfig
	OutlineConfig        = runtimeconfig.OutlineConfig
	CheckerConfig        = runtimeconfig.CheckerConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	NavigationConfig     = runtimeconfig.NavigationConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	Features             = runtimeconfig.Features
	CommandsConfig       = runtimeconfig.CommandsConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
