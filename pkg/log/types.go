package log

// Logger is the structured logging sink used across the module.
// keysAndValues are alternating keys and values (e.g., "chainId", 1).
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	// Fatal logs the entry; the zap implementation then exits the process.
	Fatal(msg string, keysAndValues ...any)
	// WithName returns a logger for a named component (e.g., "sign").
	WithName(name string) Logger
}

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

func (l Level) failed() bool {
	return l == LevelError || l == LevelFatal
}

// SpanEventRecorder copies log entries onto a trace span.
type SpanEventRecorder interface {
	TraceID() string
	SpanID() string

	// RecordEvent adds an event to the span. A failed event also marks the span as failed.
	RecordEvent(name string, failed bool, keysAndValues ...any)
}
