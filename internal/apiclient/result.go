package apiclient

import (
	apperrors "medidesk/internal/errors"
)

// Result is the uniform envelope every gateway call returns. Data is only
// meaningful when Success is true.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	// Status is the HTTP status of the backend response, zero on transport
	// failure.
	Status int `json:"-"`
}

// Err returns nil for a successful result and an *errors.APIError otherwise.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return apperrors.NewAPIError(r.Status, r.Error)
}

// Empty is the payload of calls whose data is null.
type Empty struct{}

func failure[T any](status int, message string) Result[T] {
	return Result[T]{Success: false, Error: message, Status: status}
}
