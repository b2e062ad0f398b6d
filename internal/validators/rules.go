package validators

import (
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/MKhiriev/go-quote-keeper/models"
)

const (
	MaxFolderNameLength  = 255
	MaxTagNameLength     = 50
	MaxDescriptionLength = 500
	MaxEmailLength       = 254
	MinPasswordLength    = 8
	MaxPasswordLength    = 72 // bcrypt ignores everything past 72 bytes
	MaxContentLength     = 1 << 20
	MaxImageRefLength    = 2048
	MaxSearchLength      = 200
	MaxQuotePageSize     = 500
)

const passwordSpecialSet = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	emailRules = []validation.Rule{
		validation.Required,
		validation.Length(3, MaxEmailLength),
		is.EmailFormat,
	}

	passwordRules = []validation.Rule{
		validation.Required,
		validation.Length(MinPasswordLength, MaxPasswordLength),
		validation.By(strongPassword),
	}

	folderNameRules = []validation.Rule{
		validation.By(trimmedRequired),
		validation.By(trimmedRuneLength(MaxFolderNameLength)),
	}

	tagNameRules = []validation.Rule{
		validation.By(trimmedRequired),
		validation.By(trimmedRuneLength(MaxTagNameLength)),
	}

	colorRules = []validation.Rule{
		validation.NilOrNotEmpty,
		validation.Match(hexColor).Error("must be a #RRGGBB color"),
	}

	contentRules = []validation.Rule{
		validation.Required,
		validation.Length(1, MaxContentLength),
		is.JSON,
	}

	idRules = []validation.Rule{
		validation.By(positiveID),
	}
)

// strongPassword requires an upper case letter, a lower case letter, a digit
// and a special character.
func strongPassword(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return ErrUnsupportedType
	}

	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecialSet, r):
			special = true
		}
	}
	if upper && lower && digit && special {
		return nil
	}
	return ErrWeakPassword
}

func trimmedRequired(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return validation.ErrRequired
	}
	s, ok := v.(string)
	if !ok {
		return ErrUnsupportedType
	}
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}

func trimmedRuneLength(max int) validation.RuleFunc {
	return func(value any) error {
		v, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return ErrUnsupportedType
		}
		return validation.Validate(strings.TrimSpace(s), validation.RuneLength(1, max))
	}
}

// dimension accepts nil and bounds a set width or height. Zero is rejected
// too, unlike the built-in threshold rules.
func dimension(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	n, ok := v.(int)
	if !ok {
		return ErrUnsupportedType
	}
	if n < models.MinQuoteDimension || n > models.MaxQuoteDimension {
		return ErrInvalidDimension
	}
	return nil
}

func positiveID(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return ErrUnsupportedType
	}
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

func positiveIDs(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	ids, ok := v.([]int64)
	if !ok {
		return ErrUnsupportedType
	}
	for _, id := range ids {
		if id <= 0 {
			return ErrInvalidID
		}
	}
	return nil
}
