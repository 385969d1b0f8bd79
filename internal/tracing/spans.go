package tracing

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrSessionID     = "session.id"
	AttrPromptLength  = "prompt.length"
	AttrPromptLines   = "prompt.lines"
	AttrHistorySize   = "history.size"
	AttrHistoryReason = "history.reload.reason"
	AttrErrorMessage  = "error.message"
)

// Span names.
const (
	SpanPromptSubmit  = "prompt.submit"
	SpanHistoryReload = "history.reload"
)

// Event names.
const (
	EventHistoryAppended = "history.appended"
	EventRendered        = "transcript.rendered"
)

// StartSubmit opens a prompt.submit span. The prompt text itself is never
// recorded, only its shape.
func StartSubmit(ctx context.Context, tracer trace.Tracer, sessionID, text string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanPromptSubmit,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrSessionID, sessionID),
			attribute.Int(AttrPromptLength, utf8.RuneCountInString(text)),
			attribute.Int(AttrPromptLines, strings.Count(text, "\n")+1),
		),
	)
}

// StartReload opens a history.reload span.
func StartReload(ctx context.Context, tracer trace.Tracer, reason string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanHistoryReload,
		trace.WithAttributes(attribute.String(AttrHistoryReason, reason)),
	)
}

// End closes span with an Ok or Error status depending on err.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
