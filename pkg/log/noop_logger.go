package log

var _ Logger = NoopLogger{}

// NoopLogger discards every entry. It is the default logger of the verifier and recoverer.
type NoopLogger struct{}

func NewNoopLogger() Logger {
	return NoopLogger{}
}

func (n NoopLogger) Debug(string, ...any)   {}
func (n NoopLogger) Info(string, ...any)    {}
func (n NoopLogger) Warn(string, ...any)    {}
func (n NoopLogger) Error(string, ...any)   {}
func (n NoopLogger) Fatal(string, ...any)   {}
func (n NoopLogger) WithName(string) Logger { return n }
