package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bigvo/siwe-go/pkg/log"
)

func kvToMap(kv []any) map[string]any {
	m := make(map[string]any)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			m[key] = kv[i+1]
		}
	}
	return m
}

func TestSpanLogger(t *testing.T) {
	mockLogger := NewMockLogger()
	mockSer := NewMockSpanEventRecorder("trace-1", "span-1")
	logger := log.NewSpanLogger(mockLogger, mockSer).WithName("siwe").WithName("verifier")
	assert.Equal(t, "verifier", mockLogger.Name())

	kv := []any{"chainId", 1, "network", 5}

	levels := []struct {
		level  log.Level
		logFn  func(msg string, keysAndValues ...any)
		failed bool
	}{
		{log.LevelDebug, logger.Debug, false},
		{log.LevelInfo, logger.Info, false},
		{log.LevelWarn, logger.Warn, false},
		{log.LevelError, logger.Error, true},
		{log.LevelFatal, logger.Fatal, true},
	}

	for _, tc := range levels {
		t.Run(string(tc.level), func(t *testing.T) {
			tc.logFn("verification failed", kv...)

			entry := mockLogger.LastEntry()
			assert.Equal(t, tc.level, entry.Level)
			assert.Equal(t, "verification failed", entry.Message)
			assert.Equal(t, []any{"traceId", "trace-1", "spanId", "span-1", "chainId", 1, "network", 5}, entry.KeysAndValues)

			event := kvToMap(mockSer.LastEventMetadata())
			assert.Equal(t, "verification failed", event["msg"])
			assert.Equal(t, string(tc.level), event["level"])
			assert.Equal(t, "siwe.verifier", event["component"])
			assert.Equal(t, 5, event["network"])
			assert.Equal(t, tc.failed, mockSer.Failed())
		})
	}

	t.Run("unnamed logger has no component", func(t *testing.T) {
		log.NewSpanLogger(NewMockLogger(), mockSer).Debug("recovered")
		assert.Equal(t, []any{"msg", "recovered", "level", "debug"}, mockSer.LastEventMetadata())
	})
}
