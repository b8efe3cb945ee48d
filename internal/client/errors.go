package client

import "errors"

var (
	// ErrUsage is returned for a missing or unknown subcommand or bad flags.
	ErrUsage = errors.New("usage error")

	// ErrNotLoggedIn is returned by commands that need a stored token.
	ErrNotLoggedIn = errors.New("not logged in: run signup or login first")
)
