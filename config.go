package editor

import "github.com/goliatone/go-editor/internal/runtimeconfig"

var (
	ErrEditorDisabled          = runtimeconfig.ErrEditorDisabled
	ErrAutosaveDebounceInvalid = runtimeconfig.ErrAutosaveDebounceInvalid
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheRequiresBunStorage = runtimeconfig.ErrCacheRequiresBunStorage
	ErrCMSFeatureRequired      = runtimeconfig.ErrCMSFeatureRequired
	ErrCMSRouteConfigRequired  = runtimeconfig.ErrCMSRouteConfigRequired
	ErrSeedDirRequired         = runtimeconfig.ErrSeedDirRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	AutosaveConfig = runtimeconfig.AutosaveConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	CMSConfig      = runtimeconfig.CMSConfig
	SeedConfig     = runtimeconfig.SeedConfig
	RichTextConfig = runtimeconfig.RichTextConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
