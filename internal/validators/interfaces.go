// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the auth
// service. Rules come from the `validate` struct tags on the request models.
package validators

import "context"

// Validator checks v, optionally only the named fields. Failures are
// returned as *ValidationError.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
