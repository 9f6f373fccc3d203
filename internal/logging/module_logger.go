package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-accordion/pkg/interfaces"
)

const (
	rootModule      = "accordion"
	lifecycleModule = "accordion.lifecycle"
	transportModule = "accordion.transport"
	storageModule   = "accordion.storage"
	commandsModule  = "accordion.commands"
	markdownModule  = "accordion.markdown"
)

const (
	fieldItemID = "item_id"
	fieldBatch  = "batch"
	fieldSource = "source"
)

// QualifyModule places a short module name such as "lifecycle" under the
// accordion root. Blank names map to the root itself.
func QualifyModule(module string) string {
	module = strings.TrimSpace(module)
	switch {
	case module == "":
		return rootModule
	case module == rootModule, strings.HasPrefix(module, rootModule+"."):
		return module
	default:
		return rootModule + "." + module
	}
}

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is attached
// as structured context.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = QualifyModule(module)

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

// LifecycleLogger returns the logger namespace reserved for the mount lifecycle.
func LifecycleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lifecycleModule)
}

// TransportLogger returns the logger namespace reserved for fetchers and shapers.
func TransportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, transportModule)
}

// StorageLogger returns the logger namespace reserved for entry persistence.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithItemContext enriches logger with the item id, merge batch and item source.
// Negative ids and empty strings are ignored.
func WithItemContext(logger interfaces.Logger, id int, batch, source string) interfaces.Logger {
	fields := map[string]any{}
	if id >= 0 {
		fields[fieldItemID] = id
	}
	if trimmed := strings.TrimSpace(batch); trimmed != "" {
		fields[fieldBatch] = trimmed
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldSource] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
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
