package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-editor/pkg/interfaces"
)

const (
	rootModule      = "editor"
	registryModule  = "editor.registry"
	autosaveModule  = "editor.autosave"
	publisherModule = "editor.publisher"
	seedModule      = "editor.seed"
	cmsModule       = "editor.cms"
)

const (
	fieldSlot    = "slot"
	fieldVersion = "version"
	fieldPath    = "content_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RegistryLogger returns the logger namespace reserved for the element registry.
func RegistryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, registryModule)
}

// AutosaveLogger returns the logger namespace reserved for the auto-save manager.
func AutosaveLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, autosaveModule)
}

// PublisherLogger returns the logger namespace reserved for the publish gate.
func PublisherLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, publisherModule)
}

// SeedLogger returns the logger namespace reserved for content seeding.
func SeedLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seedModule)
}

// CMSLogger returns the logger namespace reserved for the CMS collaborator client.
func CMSLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cmsModule)
}

// WithSnapshotContext enriches the provided logger with common snapshot fields
// such as slot and version. Empty values are ignored.
func WithSnapshotContext(logger interfaces.Logger, slot, version string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slot); trimmed != "" {
		fields[fieldSlot] = trimmed
	}
	if trimmed := strings.TrimSpace(version); trimmed != "" {
		fields[fieldVersion] = trimmed
	}
	return WithFields(logger, fields)
}

// WithPathContext attaches the content path a log entry refers to.
func WithPathContext(logger interfaces.Logger, path string) interfaces.Logger {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldPath: trimmed})
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
