package web

import (
	"net/http"

	"github.com/pkg/errors"
)

// Error is used to pass an error during the request through the
// application with web specific context.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{err, status}
}

// Error implements the error interface. It uses the default message of the
// wrapped error. This is what will be shown in the services' logs.
func (err *Error) Error() string {
	if err.Err == nil {
		return http.StatusText(err.Status)
	}
	return err.Err.Error()
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (err *Error) Unwrap() error {
	return err.Err
}

// ErrorResponse is the form used for API responses from failures in the API.
type ErrorResponse struct {
	Message string `json:"message"`
}

// internalMessage is the only text a client ever sees for a 5xx.
const internalMessage = "internal server error"

// StatusOf reports the HTTP status carried by err, 500 for anything that is
// not a request error.
func StatusOf(err error) int {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr.Status
	}
	return http.StatusInternalServerError
}
