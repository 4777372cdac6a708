// Package errors defines the application error taxonomy. Every domain rule
// violation surfaced to a caller is one of these typed errors; anything else
// is treated as internal and reported generically.
package errors

import "net/http"

type AppError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e *AppError) Error() string {
	return e.Message
}

func BadRequest(message string) error {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func UnauthorizedError(message string) error {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

// InvalidSignature rejects an unauthenticated webhook delivery. Never
// retryable: a bad signature will not become valid on retry.
func InvalidSignature(message string) error {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

func NotFound(message string) error {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

func Conflict(message string) error {
	return &AppError{Code: http.StatusConflict, Message: message}
}

// UpstreamError reports a failed or timed-out gateway call. Marked
// retryable so callers can distinguish it from terminal failures.
func UpstreamError(message string) error {
	return &AppError{Code: http.StatusBadGateway, Message: message, Retryable: true}
}

func InternalServerError(message string) error {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

// FromError normalizes any error into an AppError; unrecognized errors
// collapse to a generic internal error so internals never leak to callers.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return &AppError{Code: http.StatusInternalServerError, Message: "internal server error"}
}

func HasCode(err error, code int) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

func IsConflict(err error) bool {
	return HasCode(err, http.StatusConflict)
}

func IsNotFound(err error) bool {
	return HasCode(err, http.StatusNotFound)
}
