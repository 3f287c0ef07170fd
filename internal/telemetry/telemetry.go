// Package telemetry installs an OpenTelemetry tracer provider for the CLI.
// Export is enabled only when OTEL_EXPORTER_OTLP_ENDPOINT is set; otherwise
// the global no-op provider stays in place and spans cost nothing.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// Environment variables read by Setup.
const (
	EnvEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName = "OTEL_SERVICE_NAME"
)

// DefaultServiceName is reported when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "valves"

// Provider wraps the installed tracer provider. A nil *Provider is valid and
// means tracing is disabled.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Setup builds an OTLP/HTTP exporter for the collector URL in
// OTEL_EXPORTER_OTLP_ENDPOINT and installs it as the global tracer
// provider. It returns nil, nil when no endpoint is configured.
func Setup(ctx context.Context) (*Provider, error) {
	if os.Getenv(EnvEndpoint) == "" {
		return nil, nil
	}

	// The exporter reads the endpoint URL itself, deriving TLS from its
	// scheme and appending /v1/traces.
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	return Install(exporter), nil
}

// Install wires exporter into a batching tracer provider and makes it global.
func Install(exporter sdktrace.SpanExporter) *Provider {
	name := os.Getenv(EnvServiceName)
	if name == "" {
		name = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(name),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp}
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool { return p != nil }

// Flush exports every span ended so far.
func (p *Provider) Flush(ctx context.Context) error {
	if p == nil {
		return nil
	}

	return p.tp.ForceFlush(ctx)
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	return p.tp.Shutdown(ctx)
}
