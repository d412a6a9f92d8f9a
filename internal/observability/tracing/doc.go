// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C trace context from incoming requests,
// opens a server span per request, and echoes the trace ID back to the
// client in the X-Trace-Id header. Exporter wiring (Jaeger, OTLP) is left
// to the deployment; without a configured provider spans are no-ops.
package tracing
