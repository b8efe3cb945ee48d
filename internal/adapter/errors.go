package adapter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNoToken is returned by authenticated calls made before signup or login.
	ErrNoToken = errors.New("no token set")

	// ErrUnexpectedResponse is returned when a 2xx body is not a valid envelope.
	ErrUnexpectedResponse = errors.New("unexpected server response")
)

// APIError is a non-2xx answer of the auth API. It unwraps to the sentinel
// matching its status code.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string

	kind error
}

func (e *APIError) Error() string {
	var b strings.Builder
	if e.kind != nil {
		b.WriteString(e.kind.Error())
	} else {
		fmt.Fprintf(&b, "http %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Details, "; "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.kind
}
