package log_test

import "github.com/bigvo/siwe-go/pkg/log"

var _ log.Logger = &MockLogger{}

// MockLogger captures the last entry and the name it was given.
type MockLogger struct {
	lastEntry MockLogEntry
	name      string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{name: "mock"}
}

type MockLogEntry struct {
	Level         log.Level
	Message       string
	KeysAndValues []any
}

func (ml *MockLogger) Debug(msg string, keysAndValues ...any) {
	ml.record(log.LevelDebug, msg, keysAndValues)
}

func (ml *MockLogger) Info(msg string, keysAndValues ...any) {
	ml.record(log.LevelInfo, msg, keysAndValues)
}

func (ml *MockLogger) Warn(msg string, keysAndValues ...any) {
	ml.record(log.LevelWarn, msg, keysAndValues)
}

func (ml *MockLogger) Error(msg string, keysAndValues ...any) {
	ml.record(log.LevelError, msg, keysAndValues)
}

func (ml *MockLogger) Fatal(msg string, keysAndValues ...any) {
	ml.record(log.LevelFatal, msg, keysAndValues)
}

func (ml *MockLogger) WithName(name string) log.Logger {
	ml.name = name
	return ml
}

func (ml *MockLogger) Name() string { return ml.name }

func (ml *MockLogger) LastEntry() MockLogEntry { return ml.lastEntry }

func (ml *MockLogger) record(level log.Level, msg string, keysAndValues []any) {
	ml.lastEntry = MockLogEntry{Level: level, Message: msg, KeysAndValues: keysAndValues}
}

// MockSpanEventRecorder captures the last span event.
type MockSpanEventRecorder struct {
	traceID           string
	spanID            string
	failed            bool
	lastEventMetadata []any
}

func NewMockSpanEventRecorder(traceID, spanID string) *MockSpanEventRecorder {
	return &MockSpanEventRecorder{traceID: traceID, spanID: spanID}
}

func (ser *MockSpanEventRecorder) TraceID() string { return ser.traceID }

func (ser *MockSpanEventRecorder) SpanID() string { return ser.spanID }

func (ser *MockSpanEventRecorder) RecordEvent(name string, failed bool, keysAndValues ...any) {
	ser.failed = failed
	ser.lastEventMetadata = append([]any{"msg", name}, keysAndValues...)
}

func (ser *MockSpanEventRecorder) LastEventMetadata() []any { return ser.lastEventMetadata }

func (ser *MockSpanEventRecorder) Failed() bool { return ser.failed }
