// Package tracing is a thin wrapper around OpenTelemetry so that the rest
// of the code base can open and close spans without depending on the
// upstream API directly. Applications that never call Init get no-op spans.
package tracing
