package adapter

import "errors"

// Sentinel errors wrapped by every non-2xx response.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrGatewayTimeout      = errors.New("server timed out")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNotLoggedIn is returned before any request is sent when an
	// authenticated call has no access token to carry.
	ErrNotLoggedIn = errors.New("not logged in")
)
