package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "codedoc"

func StartGenerateSpan(ctx context.Context, repoURL string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "docs.generate",
		trace.WithAttributes(attribute.String("repo.url", repoURL)),
	)
}

func StartFetchSpan(ctx context.Context, mode, rawURL string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "source.fetch",
		trace.WithAttributes(
			attribute.String("source.mode", mode),
			attribute.String("source.url", rawURL),
		),
	)
}

func StartLLMSpan(ctx context.Context, model string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "llm.generate",
		trace.WithAttributes(attribute.String("llm.model", model)),
	)
}

// Fail records err on span and marks it as errored.
func Fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
