// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the HTTP handlers and the
// client adapter.
//
// Handlers write them into the "error" field of JSON error responses; the
// adapter compares against them when turning a response back into an error.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidID is returned when an {id} path segment or an id query
	// parameter is not a positive integer.
	MsgInvalidID = "invalid id"

	// MsgInvalidQuery is returned when a query parameter cannot be parsed.
	MsgInvalidQuery = "invalid query parameter"

	// MsgInternalServerError replaces the message of every 5xx response.
	MsgInternalServerError = "internal server error"

	// MsgRequestTimeout is returned when the request context deadline passes.
	MsgRequestTimeout = "request timed out"

	// MsgNotFound is returned for unknown routes and unsupported methods.
	MsgNotFound = "not found"

	// MsgAuthRequired is returned when neither the Authorization header nor
	// the auth cookie carries a token.
	MsgAuthRequired = "authentication required"

	// MsgTokenIsExpiredOrInvalid is returned when an access token fails
	// verification.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgRefreshTokenRequired is returned by the refresh endpoint when no
	// refresh token is sent in the body or the cookie.
	MsgRefreshTokenRequired = "refresh token is required"

	// MsgFolderNotOwned is returned when a caller reads a folder that belongs
	// to another user.
	MsgFolderNotOwned = "folder belongs to another user"
)
