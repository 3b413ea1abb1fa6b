package logger_adapter

import (
	"fmt"
	"portfolio-service/internal/core/port"
)

// MultiLoggerAdapter пишет каждую запись во все вложенные логгеры.
type MultiLoggerAdapter []port.LoggerPort

func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	if len(loggers) == 0 {
		return nil, fmt.Errorf("multilogger: at least one logger is required")
	}
	return MultiLoggerAdapter(loggers), nil
}

func (m MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	for _, l := range m {
		l.Info(msg, fields)
	}
}

func (m MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	for _, l := range m {
		l.Warn(msg, fields)
	}
}

func (m MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	for _, l := range m {
		l.Error(msg, err, fields)
	}
}

func (m MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	for _, l := range m {
		l.Debug(msg, fields)
	}
}

func (m MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	enriched := make(MultiLoggerAdapter, len(m))
	for i, l := range m {
		enriched[i] = l.WithFields(fields)
	}
	return enriched
}
