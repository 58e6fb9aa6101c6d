// Package observability wires OpenTelemetry tracing and metrics.
//
// Setup installs OTLP/HTTP exporters when enabled and is a no-op otherwise,
// so pipeline code can always call StartSpan and record metrics.
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, "sypnna", version.GetVersion())
//	defer shutdown(context.Background())
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
//	defer span.End()
package observability
