package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity is required to exist and does not.
	ErrNotFound = errors.New("entity was not found")

	// ErrUnreachable wraps transport failures of the random-user source:
	// no response reached this service at all.
	ErrUnreachable = errors.New("source unreachable")
)

// StatusError is returned by the random-user source when a response was
// received but carries a non-success HTTP status.
type StatusError struct {
	// Status is the HTTP status code of the response.
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source returned status %d", e.Status)
}

// FetchErrorKind enumerates the closed set of failure kinds surfaced by
// FetchAndSave. No other kinds exist.
type FetchErrorKind string

const (
	// FetchErrNetwork - transport could not complete, no response received.
	FetchErrNetwork FetchErrorKind = "NETWORK"

	// FetchErrServer - a response was received with an error status.
	FetchErrServer FetchErrorKind = "SERVER"

	// FetchErrNoData - the response decoded but the results list was empty or absent.
	FetchErrNoData FetchErrorKind = "NO_DATA"

	// FetchErrInvalidData - the first result lacked the mandatory uuid.
	FetchErrInvalidData FetchErrorKind = "INVALID_DATA"

	// FetchErrUnexpected - any other failure during the call.
	FetchErrUnexpected FetchErrorKind = "UNEXPECTED"
)

// FetchError is the only error type escaping FetchAndSave. It carries one
// of the closed kinds and renders the user-visible message for it.
type FetchError struct {
	// Kind is the failure kind.
	Kind FetchErrorKind

	// Status is the HTTP status of the source response. Only set for FetchErrServer.
	Status int

	cause error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchErrNetwork:
		return "Network error. Check your connection."
	case FetchErrServer:
		return fmt.Sprintf("Server error: %d", e.Status)
	case FetchErrNoData:
		return "No users in response"
	case FetchErrInvalidData:
		return "Invalid user data"
	default:
		if e.cause != nil {
			return fmt.Sprintf("Unexpected error: %s", e.cause.Error())
		}
		return "Unexpected error"
	}
}

func (e *FetchError) Unwrap() error {
	return e.cause
}

// NewFetchError builds a FetchError of the given kind wrapping cause.
func NewFetchError(kind FetchErrorKind, cause error) *FetchError {
	return &FetchError{Kind: kind, cause: cause}
}

// NewServerFetchError builds a FetchErrServer error embedding the source status code.
func NewServerFetchError(status int, cause error) *FetchError {
	return &FetchError{Kind: FetchErrServer, Status: status, cause: cause}
}
