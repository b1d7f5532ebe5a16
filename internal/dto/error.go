package dto

import (
	"time"

	apperrors "petiscaria/internal/errors"
)

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Redirect  string                       `json:"redirect,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}
