// Package observability groups the logging, metrics and tracing helpers used by
// the article API.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus collectors for storage and article writes
//   - tracing: OpenTelemetry tracer setup and HTTP middleware
//
// Example usage:
//
//	import (
//	    "simple-cms/internal/observability/logging"
//	    "simple-cms/internal/observability/tracing"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    shutdown, _ := tracing.InitTracer("simple-cms")
//	    defer func() { _ = shutdown(context.Background()) }()
//	    logger.Info("application started")
//	}
package observability
