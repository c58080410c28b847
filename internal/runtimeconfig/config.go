package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrEditorDisabled is returned when the module is constructed from a
// configuration with Enabled set to false.
var ErrEditorDisabled = errors.New("editor config: editor is disabled")

// ErrAutosaveDebounceInvalid indicates a non-positive debounce window.
var ErrAutosaveDebounceInvalid = errors.New("editor config: autosave debounce must be positive")

// ErrStorageProviderUnknown indicates an unsupported snapshot storage provider.
var ErrStorageProviderUnknown = errors.New("editor config: storage provider is invalid")

// ErrStorageDSNRequired indicates bun storage configured without a database DSN.
var ErrStorageDSNRequired = errors.New("editor config: storage dsn is required for the bun provider")

// ErrCacheRequiresBunStorage keeps read caching behind durable storage.
var ErrCacheRequiresBunStorage = errors.New("editor config: cache requires the bun storage provider")

var ErrCMSFeatureRequired = errors.New("editor config: cms feature must be enabled to configure the cms client")
var ErrCMSRouteConfigRequired = errors.New("editor config: cms client requires route configuration")
var ErrSeedDirRequired = errors.New("editor config: seed content directory is required when markdown seeding is enabled")
var ErrLoggingProviderRequired = errors.New("editor config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("editor config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("editor config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("editor config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the editor module.
// Fields intentionally use simple types so host applications can extend them later.
// Enabled is the master switch: constructing the module with it off fails
// with ErrEditorDisabled so hosts can keep the editor dark in production.
type Config struct {
	Enabled  bool
	Autosave AutosaveConfig
	Storage  StorageConfig
	Cache    CacheConfig
	CMS      CMSConfig
	Seed     SeedConfig
	RichText RichTextConfig
	Features Features
	Logging  LoggingConfig
}

// AutosaveConfig captures debounce behaviour for the save manager.
type AutosaveConfig struct {
	Debounce time.Duration
}

// StorageConfig selects the snapshot persistence backend.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig captures read-cache behaviour for published snapshots.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// CMSConfig wires the read-only CMS page client.
type CMSConfig struct {
	RouteConfig *urlkit.Config
	Group       string
	Route       string
	SlugParam   string
	LocaleQuery string
}

// SeedConfig controls startup content seeding.
type SeedConfig struct {
	Defaults    bool
	MarkdownDir string
	Pattern     string
}

// RichTextConfig mirrors interfaces.RenderOptions for runtime configuration.
type RichTextConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// Features toggles module functionality.
type Features struct {
	Selection    bool
	Publishing   bool
	CMSClient    bool
	MarkdownSeed bool
	Activity     bool
	Logger       bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an in-memory editing session.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Autosave: AutosaveConfig{
			Debounce: 2 * time.Second,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Seed: SeedConfig{
			Defaults: true,
			Pattern:  "*.md",
		},
		RichText: RichTextConfig{},
		Features: Features{
			Selection:  true,
			Publishing: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Autosave.Debounce <= 0 {
		return ErrAutosaveDebounceInvalid
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Storage.Provider))
	switch provider {
	case "", "memory":
	case "bun":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.Enabled && provider != "bun" {
		return ErrCacheRequiresBunStorage
	}

	if cfg.CMS.RouteConfig != nil && !cfg.Features.CMSClient {
		return ErrCMSFeatureRequired
	}
	if cfg.Features.CMSClient && cfg.CMS.RouteConfig == nil {
		return ErrCMSRouteConfigRequired
	}

	if cfg.Features.MarkdownSeed && strings.TrimSpace(cfg.Seed.MarkdownDir) == "" {
		return ErrSeedDirRequired
	}

	if cfg.Features.Logger {
		logProvider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
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
