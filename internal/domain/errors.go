package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested book or account does not exist
	ErrNotFound = errors.New("not found")

	// ErrServerOffline indicates the bookstore server is unreachable
	ErrServerOffline = errors.New("bookstore server is unreachable")

	// ErrAuthFailed indicates the session is missing or credentials were rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrForbidden indicates the server refused the action (e.g. insufficient balance)
	ErrForbidden = errors.New("forbidden")

	// ErrConfirmationMismatch indicates a typed confirmation did not match
	ErrConfirmationMismatch = errors.New("confirmation did not match")

	// ErrCancelled indicates the user dismissed a dialog
	ErrCancelled = errors.New("cancelled by user")

	// ErrInvalidInput indicates client-side validation rejected the input
	ErrInvalidInput = errors.New("invalid input")
)

// RejectedError is an application-level rejection: the server answered with a
// non-success status and an error string that should be shown verbatim.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected with status %d", e.Status)
	}
	return e.Message
}

// Unwrap maps the HTTP status onto the matching sentinel
func (e *RejectedError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrAuthFailed
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// AlertText returns the text to surface for err: a server rejection message
// verbatim when there is one, the fallback otherwise.
func AlertText(err error, fallback string) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	return fallback
}
