package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a list request with structured fields.
func LogRequest(logger *slog.Logger, requestID, sort string, params Params) {
	logger.Info("List request",
		"request_id", requestID,
		"sort", sort,
		"offset", intOrNil(params.Offset),
		"limit", intOrNil(params.Limit))
}

// LogResponse logs a list response with duration and status.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("List response",
		"request_id", requestID,
		"offset", intOrNil(params.Offset),
		"limit", intOrNil(params.Limit),
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a list error with structured fields.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("List error",
		"request_id", requestID,
		"offset", intOrNil(params.Offset),
		"limit", intOrNil(params.Limit),
		"error", err.Error(),
		"error_type", errorType)
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
