package errors

import (
	"errors"
	"fmt"
	"net/http"

	"stagecast/internal/core/domain"
)

// ErrorCode represents application error codes exposed at the API boundary.
type ErrorCode string

const (
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeDuplicateParticipant ErrorCode = "DUPLICATE_PARTICIPANT"
	ErrCodeEmptyText            ErrorCode = "EMPTY_TEXT"
	ErrCodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAcquisitionFailed    ErrorCode = "RESOURCE_ACQUISITION_FAILED"
	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrCodeRateLimit            ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// AppError carries an error code and HTTP status alongside the cause.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error.
func NewAppError(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// GetAppError extracts an AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// FromDomain maps core sentinel errors onto API error codes. Unknown
// errors map to an internal error.
func FromDomain(err error) *AppError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrParticipantNotFound),
		errors.Is(err, domain.ErrBannerNotFound),
		errors.Is(err, domain.ErrDestinationNotFound):
		return &AppError{Code: ErrCodeNotFound, Message: err.Error(), HTTPStatus: http.StatusNotFound, Cause: err}
	case errors.Is(err, domain.ErrDuplicateParticipant),
		errors.Is(err, domain.ErrLocalCameraExists):
		return &AppError{Code: ErrCodeDuplicateParticipant, Message: err.Error(), HTTPStatus: http.StatusConflict, Cause: err}
	case errors.Is(err, domain.ErrEmptyBannerText):
		return &AppError{Code: ErrCodeEmptyText, Message: err.Error(), HTTPStatus: http.StatusBadRequest, Cause: err}
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidPlatform):
		return &AppError{Code: ErrCodeInvalidCredentials, Message: err.Error(), HTTPStatus: http.StatusBadRequest, Cause: err}
	case errors.Is(err, domain.ErrAcquisitionFailed):
		return &AppError{Code: ErrCodeAcquisitionFailed, Message: err.Error(), HTTPStatus: http.StatusBadGateway, Cause: err}
	case errors.Is(err, domain.ErrInvalidTransition):
		return &AppError{Code: ErrCodeInvalidTransition, Message: err.Error(), HTTPStatus: http.StatusConflict, Cause: err}
	default:
		return &AppError{Code: ErrCodeInternal, Message: "internal error", HTTPStatus: http.StatusInternalServerError, Cause: err}
	}
}
