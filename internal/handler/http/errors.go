// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request parsing. Callers can match against them with
// [errors.Is].
var (
	// ErrNoAccessToken is returned by the auth middleware when neither the
	// "Authorization" header nor the auth cookie carries a token.
	ErrNoAccessToken = errors.New("no access token in `Authorization` header or auth cookie")

	// ErrInvalidID is returned when an {id} path segment or an id query
	// parameter is not a positive integer.
	ErrInvalidID = errors.New("id must be a positive integer")
)
