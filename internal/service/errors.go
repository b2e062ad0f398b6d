package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/validators"
)

// Error kinds. Every error a service returns wraps exactly one of them, so
// callers tell failures apart with errors.Is. The underlying cause stays in
// the chain.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrDataIntegrity = errors.New("data integrity violation")
	ErrUnauthorized  = errors.New("unauthorized")
)

// Causes wrapped together with a kind.
var (
	ErrNotOwner           = errors.New("resource belongs to another user")
	ErrFolderNotEmpty     = errors.New("folder has subfolders or quotes")
	ErrDepthLimitExceeded = errors.New("folder depth limit exceeded")
	ErrCycleDetected      = errors.New("cycle in folder hierarchy")
	ErrDanglingParent     = errors.New("folder references a missing parent")
	ErrOwnerMismatch      = errors.New("folder owner differs from its parent")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is expired or invalid")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWrongPassword      = errors.New("wrong password")

	ErrBuiltinTag = errors.New("builtin tags cannot be changed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("token creation failed")
)

var kinds = []error{ErrNotFound, ErrForbidden, ErrValidation, ErrConflict, ErrDataIntegrity, ErrUnauthorized}

// kindOf returns the kind carried by err, or nil.
func kindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

func withKind(kind, cause error) error {
	return fmt.Errorf("%w: %w", kind, cause)
}

func forbidden() error {
	return withKind(ErrForbidden, ErrNotOwner)
}

// storeError attaches a kind to repository errors. Errors that already carry
// a kind, and infrastructure failures, are returned unchanged.
func storeError(err error) error {
	if err == nil || kindOf(err) != nil {
		return err
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return withKind(ErrNotFound, err)
	case errors.Is(err, store.ErrAlreadyExists), errors.Is(err, store.ErrForeignKey):
		return withKind(ErrConflict, err)
	case errors.Is(err, store.ErrConstraint):
		return withKind(ErrValidation, err)
	}
	return err
}

// validationError attaches ErrValidation to validator failures.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, validators.ErrInvalidInput) {
		return withKind(ErrValidation, err)
	}
	return err
}
