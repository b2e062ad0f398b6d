package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput wraps every rule violation reported by the validator.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidID        = errors.New("must be a positive id")
	ErrWeakPassword     = errors.New("must contain an upper case letter, a lower case letter, a digit and a special character")
	ErrInvalidDimension = errors.New("must be between 100 and 4096")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)
