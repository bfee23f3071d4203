// Package telemetry defines the logging, tracing, and metrics interfaces
// used by jsonstream and the grammar validator, and concrete adapters
// backed by goa.design/clue/log and go.opentelemetry.io/otel: small
// interfaces a caller can satisfy with a no-op implementation in tests,
// with real adapters wired in production.
package telemetry

import "context"

// Logger is the structured logging surface the streaming protocol uses
// for diagnostic tracing of grammar violations and resumable-step
// progress. It is never used for control flow: the error return of an
// event method is always authoritative.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
}

// NopLogger discards everything. Useful as a default when no logger is
// configured.
type NopLogger struct{}

func (NopLogger) Debug(context.Context, string, ...any) {}
func (NopLogger) Info(context.Context, string, ...any)  {}
func (NopLogger) Warn(context.Context, string, ...any)  {}
func (NopLogger) Error(context.Context, string, ...any) {}

// Span is a single traced operation.
type Span interface {
	End()
	SetAttribute(key string, value any)
	RecordError(err error)
}

// Tracer starts spans around the JSON reader's resumable step.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Metrics records counters for stream throughput: total events processed
// and current container-stack depth.
type Metrics interface {
	IncEvents(ctx context.Context, kind string)
	RecordDepth(ctx context.Context, depth int)
}

// NopTracer starts spans that do nothing.
type NopTracer struct{}

func (NopTracer) Start(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                        {}
func (nopSpan) SetAttribute(string, any)    {}
func (nopSpan) RecordError(error)           {}

// NopMetrics records nothing.
type NopMetrics struct{}

func (NopMetrics) IncEvents(context.Context, string)   {}
func (NopMetrics) RecordDepth(context.Context, int)    {}
