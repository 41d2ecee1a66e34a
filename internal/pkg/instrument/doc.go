// Package instrument sets up process-wide observability: the slog default
// logger (JSON to stdout, optionally bridged to OTLP), OpenTelemetry tracer and
// meter providers, correlation IDs carried in context, and masking of
// sensitive fields in log output.
package instrument
