package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boddenberg/dashboard-api/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

// errorWriter maps service errors to HTTP responses.
type errorWriter struct {
	logger *zap.Logger
	// exposeDetails appends the cause to 500 messages of write operations.
	exposeDetails bool
}

// decodeJSON reads the request body into v. On failure it writes the 4xx
// response and returns false.
func (e errorWriter) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		e.logger.Warn("request body too large", zap.Int64("limit", tooLarge.Limit))
		writeError(w, http.StatusRequestEntityTooLarge, domain.MsgBodyTooLarge)
		return false
	}
	e.logger.Debug("invalid request body", zap.Error(err))
	writeError(w, http.StatusBadRequest, domain.MsgInvalidBody)
	return false
}

// serviceError writes the response for an error returned by a service.
func (e errorWriter) serviceError(w http.ResponseWriter, err error) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation
	var conflict *domain.ErrConflict
	var unauthorized *domain.ErrUnauthorized
	var circuitOpen *domain.ErrCircuitOpen
	var operation *domain.ErrOperation

	switch {
	case errors.As(err, &notFound):
		e.logger.Debug("not found", zap.String("resource", notFound.Resource), zap.String("id", notFound.ID))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		e.logger.Debug("validation error", zap.String("field", validation.Field), zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		e.logger.Debug("conflict", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unauthorized):
		e.logger.Warn("unauthorized", zap.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &circuitOpen):
		e.logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &operation):
		e.logger.Error("operation failed", zap.String("operation", operation.Message), zap.Error(operation.Err))
		writeError(w, http.StatusInternalServerError, operation.Public(e.exposeDetails))
	default:
		e.logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
