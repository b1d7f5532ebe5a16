// Package httpx holds the JSON response helpers shared by the controllers.
package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"petiscaria/internal/dto"
	apperrors "petiscaria/internal/errors"
)

const SignInPath = "/signin"

// Trace returns a fresh trace id and a logger carrying it.
func Trace(logger *zap.Logger) (string, *zap.Logger) {
	traceID := uuid.New().String()
	return traceID, logger.With(zap.String("traceId", traceID))
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, traceID, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, logger, http.StatusBadRequest, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// WriteUnauthorized sends the caller back to the sign-in page.
func WriteUnauthorized(w http.ResponseWriter, logger *zap.Logger, traceID, message string) {
	WriteJSON(w, logger, http.StatusUnauthorized, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusUnauthorized,
		Code:      "UNAUTHORIZED",
		Message:   message,
		Redirect:  SignInPath,
		Timestamp: time.Now().UTC(),
	})
}

// WriteError maps an application error to its HTTP status. Unknown errors
// are logged and reported as internal.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, logger, traceID, ve.Message, ve.Details...)
		return
	}
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		WriteUnauthorized(w, logger, traceID, err.Error())
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		writeError(w, logger, traceID, http.StatusNotFound, "NOT_FOUND", nf.Message)
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		writeError(w, logger, traceID, http.StatusConflict, "CONFLICT", ce.Message)
		return
	}
	if ae, ok := apperrors.IsAPIError(err); ok {
		switch {
		case ae.Unauthorized():
			WriteUnauthorized(w, logger, traceID, "the restaurant API rejected the session")
		case ae.NotFound():
			writeError(w, logger, traceID, http.StatusNotFound, "NOT_FOUND", "resource not found on the restaurant API")
		default:
			logger.Error("restaurant API error", zap.Error(err))
			writeError(w, logger, traceID, http.StatusBadGateway, "UPSTREAM_ERROR", "the restaurant API failed to answer")
		}
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeError(w, logger, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func writeError(w http.ResponseWriter, logger *zap.Logger, traceID string, status int, code, message string) {
	WriteJSON(w, logger, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// DecodeJSON reads the request body into v, answering 400 itself on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID string, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

// IDParam parses a positive integer path parameter, answering 400 itself on
// failure.
func IDParam(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		logger.Warn("invalid id in path", zap.String("param", name), zap.String("value", raw))
		WriteValidationError(w, logger, traceID, "invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
		return 0, false
	}
	return id, true
}
