package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"retailcli/internal/basket"
	"retailcli/internal/dataset"
	"retailcli/internal/infrastructure"
	"retailcli/internal/performance"
)

// ErrorHandler provides centralized error handling for HTTP handlers
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError logs the error and writes a structured response.
// Non-API errors are wrapped as internal server errors so no raw error
// text leaks unless a handler opted in via NewWithDetails.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	h.logger.ErrorContext(ctx, "request failed",
		slog.String("error", err.Error()),
		slog.String("trace_id", infrastructure.GetTraceID(ctx)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	apiErr := toAPIError(err)
	render.Render(w, r, NewErrorResponse(apiErr))
}

// toAPIError converts any error to an APIError. Data quality failures
// from the pipeline map to 422 so callers can tell bad inputs apart
// from genuine server faults.
func toAPIError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return New(http.StatusGatewayTimeout, "TIMEOUT", "The request took too long to process")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var thresholdErr *basket.ThresholdError
	if errors.As(err, &thresholdErr) {
		return NewWithDetails(http.StatusBadRequest, "INVALID_THRESHOLD", "Threshold must be in (0,1]", thresholdErr.Error())
	}

	var schemaErr *dataset.SchemaError
	if errors.As(err, &schemaErr) {
		return BadInputDataError(schemaErr)
	}
	var joinErr *dataset.JoinError
	if errors.As(err, &joinErr) {
		return BadInputDataError(joinErr)
	}
	var parseErr *dataset.ParseError
	if errors.As(err, &parseErr) {
		return BadInputDataError(parseErr)
	}
	var dateErr *performance.DateParseError
	if errors.As(err, &dateErr) {
		return BadInputDataError(dateErr)
	}

	return ErrInternalServer
}
