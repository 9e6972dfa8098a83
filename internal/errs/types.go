package errs

import (
	"net/http"
)

func codeFor(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
func NewBadRequestError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusBadRequest),
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewValidationError creates a 400 whose body is the field -> messages mapping.
func NewValidationError(fields map[string][]string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusBadRequest),
		Message: "Validation failed",
		Status:  http.StatusBadRequest,
		Fields:  fields,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusNotFound),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusTooManyRequests),
		Message: http.StatusText(http.StatusTooManyRequests),
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
