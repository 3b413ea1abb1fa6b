package contextkeys

import (
	"context"
	"portfolio-service/internal/core/port"
)

type (
	loggerKey  struct{}
	traceIDKey struct{}
)

// ContextWithLogger кладет логгер запроса в контекст.
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext возвращает логгер запроса или пустой логгер, если его нет.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey{}).(port.LoggerPort); ok {
		return logger
	}
	return discard{}
}

// ComponentLogger - логгер из контекста, обогащенный именем компонента и метода.
func ComponentLogger(ctx context.Context, component, method string) port.LoggerPort {
	return LoggerFromContext(ctx).WithFields(port.Fields{
		"component": component,
		"method":    method,
	})
}

// ContextWithTraceID кладет trace_id в контекст.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext возвращает trace_id или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

type discard struct{}

func (discard) Info(string, port.Fields) {}
func (discard) Warn(string, port.Fields) {}
func (discard) Error(string, error, port.Fields) {}
func (discard) Debug(string, port.Fields) {}
func (d discard) WithFields(port.Fields) port.LoggerPort { return d }
