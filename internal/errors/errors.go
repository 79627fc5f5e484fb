package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when form input fails validation.
	ErrValidation = errors.New("validation failed")
	// ErrSubmitInFlight is returned when a form is submitted while a previous submit is pending.
	ErrSubmitInFlight = errors.New("submit already in progress")
	// ErrNoFileSelected is returned when a lab upload is submitted without a file.
	ErrNoFileSelected = errors.New("please select a file to upload")
	// ErrFileTooLarge is returned when an upload exceeds the accepted size.
	ErrFileTooLarge = errors.New("file is too large")
	// ErrUnsupportedFile is returned when the upload file extension is not accepted.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoSelection is returned when a dispense is submitted with no medicine selected.
	ErrNoSelection = errors.New("please select at least one medicine to dispense")
	// ErrLastRow is returned when removing the only remaining row of a collection.
	ErrLastRow = errors.New("cannot remove the last row")
	// ErrRowNotFound is returned when a row id is not part of a collection.
	ErrRowNotFound = errors.New("row not found")
	// ErrNotOpen is returned when a two-phase action is submitted before it was opened.
	ErrNotOpen = errors.New("no action open")
	// ErrNotAuthenticated is returned when an operation needs a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrPartialDispense is returned when at least one medicine of a batch failed.
	ErrPartialDispense = errors.New("failed to dispense some medicines")
)

// APIError is a failure reported by the backend or the transport to it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// NewAPIError creates a new API error.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps workflow errors to HTTP errors. Wrapped errors are
// matched by their sentinel; an *HTTPError is returned as is.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		apiErr  *APIError
		httpErr *HTTPError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrSubmitInFlight):
		return NewHTTPError(http.StatusConflict, err.Error(), "SUBMIT_IN_FLIGHT")
	case errors.Is(err, ErrNoFileSelected):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FILE_SELECTED")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, err.Error(), "FILE_TOO_LARGE")
	case errors.Is(err, ErrUnsupportedFile):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FILE")
	case errors.Is(err, ErrNoSelection):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_SELECTION")
	case errors.Is(err, ErrLastRow):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LAST_ROW")
	case errors.Is(err, ErrRowNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ROW_NOT_FOUND")
	case errors.Is(err, ErrNotOpen):
		return NewHTTPError(http.StatusConflict, err.Error(), "NOT_OPEN")
	case errors.Is(err, ErrNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_AUTHENTICATED")
	case errors.Is(err, ErrPartialDispense):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "PARTIAL_DISPENSE")
	case errors.As(err, &apiErr):
		return NewHTTPError(http.StatusBadGateway, apiErr.Message, "BACKEND_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
