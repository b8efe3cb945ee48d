package service

import "errors"

// Domain outcomes. These are expected results of normal operation.
var (
	ErrDuplicateEmail      = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

// Infrastructure failures.
var (
	ErrStoreUnavailable    = errors.New("credential store unavailable")
	ErrPasswordHashing     = errors.New("password hashing failed")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
