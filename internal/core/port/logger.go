package port

// Fields - структурированные поля записи лога.
type Fields map[string]interface{}

// LoggerPort - логгер, которым пользуются use cases и адаптеры.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)
	// WithFields возвращает логгер, который добавляет fields к каждой записи.
	WithFields(fields Fields) LoggerPort
}
