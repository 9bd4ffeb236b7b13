package apperror

import "net/http"

type AppError struct {
	Code    int         `json:"status"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Details interface{} `json:"fields,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, title, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Title:   title,
		Message: message,
		Err:     err,
	}
}

// Validation reports field-level schema failures. details is rendered as-is.
func Validation(message string, details interface{}) *AppError {
	e := New(http.StatusBadRequest, "Bad Request", message, nil)
	e.Details = details
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, "Bad Request", message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, "Unauthorized", message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, "Forbidden", message, nil)
}

func NotFound(title, message string) *AppError {
	return New(http.StatusNotFound, title, message, nil)
}

func Conflict(title, message string) *AppError {
	return New(http.StatusConflict, title, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, "Too Many Requests", message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", "Internal Server Error", err)
}
