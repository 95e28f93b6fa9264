package log

import (
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ SpanEventRecorder = &OtelSpanEventRecorder{}

const (
	// missingAttributeValue pads a trailing key that has no value.
	missingAttributeValue = "MISSING"
	// invalidAttributeKey collects the remaining pairs once a non-string key is seen.
	invalidAttributeKey = "invalidKeysAndValues"
)

// OtelSpanEventRecorder records log entries on an OpenTelemetry span.
type OtelSpanEventRecorder struct {
	span trace.Span
}

func NewOtelSpanEventRecorder(span trace.Span) *OtelSpanEventRecorder {
	return &OtelSpanEventRecorder{span: span}
}

func (ser *OtelSpanEventRecorder) TraceID() string {
	return ser.span.SpanContext().TraceID().String()
}

func (ser *OtelSpanEventRecorder) SpanID() string {
	return ser.span.SpanContext().SpanID().String()
}

func (ser *OtelSpanEventRecorder) RecordEvent(name string, failed bool, keysAndValues ...any) {
	ser.span.AddEvent(name, trace.WithAttributes(kvToOtelAttributes(keysAndValues...)...))
	if failed {
		ser.span.SetStatus(codes.Error, name)
	}
}

func kvToOtelAttributes(keysAndValues ...any) []attribute.KeyValue {
	attributes := make([]attribute.KeyValue, 0, (len(keysAndValues)+1)/2)
	for rest := keysAndValues; len(rest) > 0; rest = rest[min(2, len(rest)):] {
		key, ok := rest[0].(string)
		switch {
		case !ok:
			return append(attributes, attribute.String(invalidAttributeKey, fmt.Sprint(rest)))
		case len(rest) == 1:
			attributes = append(attributes, attribute.String(key, missingAttributeValue))
		default:
			attributes = append(attributes, toOtelAttribute(key, rest[1]))
		}
	}
	return attributes
}

// toOtelAttribute keeps the native attribute type for the values the module logs;
// anything else is formatted as a string.
func toOtelAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case uint64:
		// Chain ids may exceed the int64 range.
		return attribute.String(key, strconv.FormatUint(v, 10))
	case float64:
		return attribute.Float64(key, v)
	case error:
		return attribute.String(key, v.Error())
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
