// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport for the auth API.
//
// The primary abstraction is [AuthAdapter], which decouples the CLI from the
// underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPAuthAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-auth-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_adapter_mock.go -package=mock

// AuthAdapter defines transport-agnostic communication with the auth API.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type AuthAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Signup creates an account. On success it stores the returned token via
	// SetToken and returns the created user.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)

	// Login checks credentials. On success it stores the fresh token via
	// SetToken and returns the user.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Profile returns the user the stored token was issued for.
	// Returns [ErrNoToken] if no token is set.
	Profile(ctx context.Context) (models.User, error)

	// Logout notifies the server and forgets the stored token.
	Logout(ctx context.Context) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
