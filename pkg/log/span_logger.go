package log

var _ Logger = SpanLogger{}

// SpanLogger forwards entries to a wrapped Logger and mirrors them as span events,
// so a failed verification shows up on the caller's trace.
type SpanLogger struct {
	lg        Logger
	ser       SpanEventRecorder
	component string
}

// callerSkipper is implemented by loggers that report the call site.
type callerSkipper interface {
	withCallerSkip(skip int) Logger
}

// NewSpanLogger wraps lg. A logger that reports its caller skips the two SpanLogger frames.
func NewSpanLogger(lg Logger, ser SpanEventRecorder) Logger {
	if cs, ok := lg.(callerSkipper); ok {
		lg = cs.withCallerSkip(2)
	}
	return SpanLogger{lg: lg, ser: ser}
}

func (sl SpanLogger) Debug(msg string, keysAndValues ...any) { sl.log(LevelDebug, msg, keysAndValues) }
func (sl SpanLogger) Info(msg string, keysAndValues ...any)  { sl.log(LevelInfo, msg, keysAndValues) }
func (sl SpanLogger) Warn(msg string, keysAndValues ...any)  { sl.log(LevelWarn, msg, keysAndValues) }
func (sl SpanLogger) Error(msg string, keysAndValues ...any) { sl.log(LevelError, msg, keysAndValues) }
func (sl SpanLogger) Fatal(msg string, keysAndValues ...any) { sl.log(LevelFatal, msg, keysAndValues) }

// WithName names both the wrapped logger and the component attribute of span events.
func (sl SpanLogger) WithName(name string) Logger {
	component := name
	if sl.component != "" {
		component = sl.component + "." + name
	}
	return SpanLogger{lg: sl.lg.WithName(name), ser: sl.ser, component: component}
}

// log records the event with its level and component, then passes the entry on
// prefixed with the trace and span identifiers.
func (sl SpanLogger) log(level Level, msg string, keysAndValues []any) {
	event := make([]any, 0, len(keysAndValues)+4)
	event = append(event, "level", string(level))
	if sl.component != "" {
		event = append(event, "component", sl.component)
	}
	sl.ser.RecordEvent(msg, level.failed(), append(event, keysAndValues...)...)

	kv := make([]any, 0, len(keysAndValues)+4)
	kv = append(kv, "traceId", sl.ser.TraceID(), "spanId", sl.ser.SpanID())
	kv = append(kv, keysAndValues...)

	switch level {
	case LevelDebug:
		sl.lg.Debug(msg, kv...)
	case LevelInfo:
		sl.lg.Info(msg, kv...)
	case LevelWarn:
		sl.lg.Warn(msg, kv...)
	case LevelError:
		sl.lg.Error(msg, kv...)
	default:
		sl.lg.Fatal(msg, kv...)
	}
}
