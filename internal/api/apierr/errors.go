package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindmatch/memoryledger/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUserNotFound  = "USER_NOT_FOUND"
	CodeGameNotFound  = "GAME_NOT_FOUND"
	CodeOutOfRange    = "OUT_OF_RANGE"
	CodeInternalError = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// NewInvalidRequestError creates a 400 error with a custom message
func NewInvalidRequestError(message string) error {
	return &httpError{
		status:   http.StatusBadRequest,
		apiError: APIError{Code: CodeInvalidInput, Message: message},
	}
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return &httpError{
			status:   http.StatusBadRequest,
			apiError: APIError{Code: CodeInvalidInput, Message: err.Error()},
		}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{
			status:   http.StatusNotFound,
			apiError: APIError{Code: CodeUserNotFound, Message: err.Error()},
		}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{
			status:   http.StatusNotFound,
			apiError: APIError{Code: CodeGameNotFound, Message: err.Error()},
		}
	case errors.Is(err, model.ErrOutOfRange):
		return &httpError{
			status:   http.StatusBadRequest,
			apiError: APIError{Code: CodeOutOfRange, Message: err.Error()},
		}
	default:
		return &httpError{
			status:   http.StatusInternalServerError,
			apiError: APIError{Code: CodeInternalError, Message: "internal error"},
		}
	}
}
