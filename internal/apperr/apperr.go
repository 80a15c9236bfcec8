// Package apperr defines the error taxonomy exposed over the API and its
// mapping to HTTP responses.
package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors carry the exact message returned to clients.
var (
	// ErrUserExists is returned when signing up with an already registered email.
	ErrUserExists = errors.New("User already exists")
	// ErrUnknownEmail is returned when login finds no user for the email.
	ErrUnknownEmail = errors.New("Credentials does not match")
	// ErrWrongPassword is returned when the user exists but the password mismatches.
	ErrWrongPassword = errors.New("Incorrect password")
	// ErrTaskNotFound is returned when no task matches the (id, owner) pair.
	// A wrong owner and a missing task are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("Task not found")
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Msg   string `json:"msg"`
	Error string `json:"error,omitempty"`
}

// MapToHTTP translates a service error to a status code and response body.
// Unrecognized errors become 500 with the underlying cause surfaced.
func MapToHTTP(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrUserExists),
		errors.Is(err, ErrUnknownEmail),
		errors.Is(err, ErrWrongPassword):
		return http.StatusBadRequest, ErrorResponse{Msg: err.Error()}
	case errors.Is(err, ErrTaskNotFound):
		return http.StatusNotFound, ErrorResponse{Msg: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Msg: "Internal server error", Error: err.Error()}
	}
}
