package logging

import (
	"context"
	"maps"
	"strings"
)

const (
	rootModule    = "godeck"
	OutlineModule = "godeck.outline"
	QualityModule = "godeck.quality"
	CourseModule  = "godeck.course"
	MergeModule   = "godeck.merge"
	RenderModule  = "godeck.render"
	DiagramModule = "godeck.diagram"
)

const (
	fieldPath  = "path"
	fieldSlide = "slide"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached
// as a field on every entry.
func ModuleLogger(provider LoggerProvider, module string) Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// WithFields attaches fields when the logger supports FieldsLogger. Nil or
// empty maps return the logger unchanged.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// WithFile tags entries with the file being processed and, when positive,
// the 1-based slide number.
func WithFile(logger Logger, path string, slide int) Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPath] = trimmed
	}
	if slide > 0 {
		fields[fieldSlide] = slide
	}
	return WithFields(logger, fields)
}

// Ensure returns logger, or a no-op logger when it is nil.
func Ensure(logger Logger) Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) Logger {
	return n
}
