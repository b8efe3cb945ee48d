// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header does not use the Bearer scheme or has no token part at all.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)

// Client-facing messages of the response envelope.
const (
	msgUserCreated        = "User created successfully"
	msgLoginSuccessful    = "Login successful"
	msgProfileRetrieved   = "Profile retrieved successfully"
	msgLogoutSuccessful   = "Logout successful"
	msgDuplicateEmail     = "User with this email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgTokenRequired      = "Access token required"
	msgTokenInvalid       = "Invalid or expired token"
	msgValidationFailed   = "Validation failed"
	msgInvalidJSON        = "Invalid JSON was passed"
	msgInternalError      = "Internal server error"
)
