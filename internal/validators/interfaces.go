// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Rules are expressed with ozzo-validation. A Validator accepts the request
// and domain models of the quote keeper and can be scoped to a subset of
// fields, so the same model is checked differently by, for example,
// registration and login.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
// A failed check returns an error wrapping ErrInvalidInput.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
