// Package log is the structured logging sink of the SIWE verifier.
//
// Library code receives a Logger through options and never configures output itself:
// the verifier and the key recoverer default to NoopLogger, and only the siwe command
// builds a ZapLogger from Config.
//
//	logger := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelDebug})
//	verifier := siwe.NewVerifier(1, siwe.WithLogger(logger.WithName("siwe")))
//
// # Context and tracing
//
// SetContextLogger attaches a logger to a context. If the context carries a valid
// OpenTelemetry span the logger is wrapped in a SpanLogger, which copies every entry
// to the span as an event; Error and Fatal entries also mark the span as failed.
//
//	ctx, span := tracer.Start(ctx, "siwe.Verify")
//	defer span.End()
//	ctx = log.SetContextLogger(ctx, logger)
//	log.FromContext(ctx).Debug("message verified", "address", addr)
//
// # Environment
//
// Config is populated by cleanenv from SIWE_LOG_FORMAT (console, logfmt, json),
// SIWE_LOG_LEVEL (debug, info, warn, error, fatal) and SIWE_LOG_OUTPUT
// (stderr, stdout or a file path).
package log
