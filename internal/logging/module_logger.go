package logging

import (
	"context"
	"strings"

	"github.com/coursekit/courselint/pkg/interfaces"
)

const (
	rootModule      = "courselint"
	processorModule = "courselint.processor"
	assembleModule  = "courselint.assemble"
	urlcheckModule  = "courselint.urlcheck"
	commandsModule  = "courselint.commands"
)

const (
	fieldFilePath = "file"
	fieldKind     = "content_kind"
	fieldPhase    = "phase"
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

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ProcessorLogger returns the logger namespace reserved for the pipeline
// orchestrator.
func ProcessorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, processorModule)
}

// AssembleLogger returns the logger namespace reserved for the per-type
// assemblers.
func AssembleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, assembleModule)
}

// URLCheckLogger returns the logger namespace reserved for the URL
// reachability pass.
func URLCheckLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, urlcheckModule)
}

// CommandLogger returns a module-scoped logger for command handlers.
func CommandLogger(provider interfaces.LoggerProvider, name string) interfaces.Logger {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = "core"
	}
	logger := ModuleLogger(provider, commandsModule+"."+trimmed)
	return WithFields(logger, map[string]any{
		"component": "command",
	})
}

// WithFileContext enriches the provided logger with common pipeline fields
// such as the file path, content kind, and pipeline phase. Empty values are
// ignored.
func WithFileContext(logger interfaces.Logger, file, kind, phase string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(file); trimmed != "" {
		fields[fieldFilePath] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldKind] = trimmed
	}
	if trimmed := strings.TrimSpace(phase); trimmed != "" {
		fields[fieldPhase] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so the pipeline can safely operate when logging is disabled.
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
