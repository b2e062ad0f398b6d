package validators

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/MKhiriev/go-quote-keeper/models"
)

// Field names accepted by Validate to narrow the checks to a subset of a
// model's fields.
const (
	FieldID       = "id"
	FieldUserID   = "user_id"
	FieldOwnerID  = "owner_id"
	FieldParentID = "parent_id"
	FieldName     = "name"

	// FieldEmail checks presence and format of an email address.
	FieldEmail = "email"
	// FieldPassword enforces the password strength policy (registration,
	// password change).
	FieldPassword = "password"
	// FieldPasswordPresent only requires a non-empty password (login).
	FieldPasswordPresent = "password_present"

	FieldContent         = "content"
	FieldDimensions      = "dimensions"
	FieldBackgroundColor = "background_color"
	FieldBackgroundImage = "background_image"
	FieldFolderID        = "folder_id"
	FieldTagIDs          = "tag_ids"
	FieldDescription     = "description"
	FieldColor           = "color"
	FieldTier            = "tier"
	FieldPage            = "page"
)

// RequestValidator validates the request and domain models of the quote
// keeper with ozzo-validation rules.
type RequestValidator struct{}

// NewValidator constructs a RequestValidator and returns it as a [Validator].
func NewValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer forms
// are accepted. Without fields a default set for the model is checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error

	switch value := obj.(type) {
	case models.Credentials:
		err = v.validateCredentials(value, fields...)
	case *models.Credentials:
		err = v.validateCredentials(*value, fields...)

	case models.Folder:
		err = v.validateFolder(value, fields...)
	case *models.Folder:
		err = v.validateFolder(*value, fields...)

	case models.CreateQuoteRequest:
		err = v.validateCreateQuote(value, fields...)
	case *models.CreateQuoteRequest:
		err = v.validateCreateQuote(*value, fields...)

	case models.QuoteUpdate:
		err = v.validateQuoteUpdate(value)
	case *models.QuoteUpdate:
		err = v.validateQuoteUpdate(*value)

	case models.QuoteFilter:
		err = v.validateQuoteFilter(value)
	case *models.QuoteFilter:
		err = v.validateQuoteFilter(*value)

	case models.CreateTagRequest:
		err = v.validateCreateTag(value)
	case *models.CreateTagRequest:
		err = v.validateCreateTag(*value)

	case models.TagUpdate:
		err = v.validateTagUpdate(value)
	case *models.TagUpdate:
		err = v.validateTagUpdate(*value)

	case models.ProfileUpdateRequest:
		err = v.validateProfileUpdate(value)
	case *models.ProfileUpdateRequest:
		err = v.validateProfileUpdate(*value)

	case models.Tier:
		err = validation.Errors{FieldTier: validateTier(value)}.Filter()
	case models.TierUpdateRequest:
		err = validation.Errors{FieldTier: validateTier(value.Tier)}.Filter()

	default:
		return ErrUnsupportedType
	}

	if err != nil {
		return wrap(err)
	}
	return nil
}

// wrap tags rule violations with ErrInvalidInput and passes programming
// errors such as ErrUnknownField through.
func wrap(err error) error {
	switch err {
	case ErrUnknownField, ErrUnsupportedType:
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func (v *RequestValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	errs := validation.Errors{}
	for _, f := range fields {
		switch f {
		case FieldEmail:
			errs["email"] = validation.Validate(c.Email, emailRules...)
		case FieldPassword:
			errs["password"] = validation.Validate(c.Password, passwordRules...)
		case FieldPasswordPresent:
			errs["password"] = validation.Validate(c.Password, validation.Required)
		default:
			return ErrUnknownField
		}
	}

	return errs.Filter()
}

func (v *RequestValidator) validateFolder(folder models.Folder, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldOwnerID}
	}

	errs := validation.Errors{}
	for _, f := range fields {
		switch f {
		case FieldID:
			errs["id"] = validation.Validate(folder.ID, validation.Required, validation.By(positiveID))
		case FieldName:
			errs["name"] = validation.Validate(folder.Name, folderNameRules...)
		case FieldOwnerID:
			errs["ownerId"] = validation.Validate(folder.OwnerID, validation.Required, validation.By(positiveID))
		case FieldParentID:
			errs["parentId"] = validation.Validate(folder.ParentID, validation.NotNil, validation.By(positiveID))
		default:
			return ErrUnknownField
		}
	}

	return errs.Filter()
}

func (v *RequestValidator) validateCreateQuote(req models.CreateQuoteRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent, FieldDimensions, FieldBackgroundColor, FieldBackgroundImage, FieldFolderID, FieldTagIDs}
	}

	errs := validation.Errors{}
	for _, f := range fields {
		switch f {
		case FieldContent:
			errs["content"] = validation.Validate(req.Content, contentRules...)
		case FieldDimensions:
			errs["width"] = validation.Validate(req.Width, validation.By(dimension))
			errs["height"] = validation.Validate(req.Height, validation.By(dimension))
		case FieldBackgroundColor:
			errs["backgroundColor"] = validation.Validate(req.BackgroundColor, colorRules...)
		case FieldBackgroundImage:
			errs["backgroundImage"] = validation.Validate(req.BackgroundImage, validation.NilOrNotEmpty, validation.Length(1, MaxImageRefLength))
		case FieldFolderID:
			errs["folderId"] = validation.Validate(req.FolderID, idRules...)
		case FieldTagIDs:
			errs["tagIds"] = validation.Validate(req.TagIDs, validation.By(positiveIDs))
		default:
			return ErrUnknownField
		}
	}

	return errs.Filter()
}

func (v *RequestValidator) validateQuoteUpdate(u models.QuoteUpdate) error {
	if u.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	errs := validation.Errors{
		"content": validation.Validate(u.Content, validation.NilOrNotEmpty, validation.Length(1, MaxContentLength), validation.By(jsonContent)),
		"width":   validation.Validate(u.Width, validation.By(dimension)),
		"height":  validation.Validate(u.Height, validation.By(dimension)),
		"tagIds":  validation.Validate(u.TagIDs, validation.By(positiveIDs)),
	}
	if u.BackgroundColor.Present {
		errs["backgroundColor"] = validation.Validate(u.BackgroundColor.Value, colorRules...)
	}
	if u.BackgroundImage.Present {
		errs["backgroundImage"] = validation.Validate(u.BackgroundImage.Value, validation.NilOrNotEmpty, validation.Length(1, MaxImageRefLength))
	}
	if u.FolderID.Present {
		errs["folderId"] = validation.Validate(u.FolderID.Value, idRules...)
	}

	return errs.Filter()
}

func (v *RequestValidator) validateQuoteFilter(f models.QuoteFilter) error {
	return validation.Errors{
		"folderId": validation.Validate(f.FolderID, idRules...),
		"tagId":    validation.Validate(f.TagID, idRules...),
		"search":   validation.Validate(f.Search, validation.RuneLength(0, MaxSearchLength)),
		"limit":    validation.Validate(f.Limit, validation.Max(uint64(MaxQuotePageSize))),
	}.Filter()
}

func (v *RequestValidator) validateCreateTag(req models.CreateTagRequest) error {
	return validation.Errors{
		"name":        validation.Validate(req.Name, tagNameRules...),
		"description": validation.Validate(req.Description, validation.RuneLength(0, MaxDescriptionLength)),
		"color":       validation.Validate(req.Color, colorRules...),
	}.Filter()
}

func (v *RequestValidator) validateTagUpdate(u models.TagUpdate) error {
	if u.Name == nil && !u.Description.Present && !u.Color.Present {
		return ErrNoFieldsToUpdate
	}

	errs := validation.Errors{}
	if u.Name != nil {
		errs["name"] = validation.Validate(*u.Name, tagNameRules...)
	}
	if u.Description.Present {
		errs["description"] = validation.Validate(u.Description.Value, validation.RuneLength(0, MaxDescriptionLength))
	}
	if u.Color.Present {
		errs["color"] = validation.Validate(u.Color.Value, colorRules...)
	}

	return errs.Filter()
}

func (v *RequestValidator) validateProfileUpdate(req models.ProfileUpdateRequest) error {
	if req.Email == nil && req.NewPassword == nil {
		return ErrNoFieldsToUpdate
	}

	errs := validation.Errors{}
	if req.Email != nil {
		errs["email"] = validation.Validate(*req.Email, emailRules...)
	}
	if req.NewPassword != nil {
		errs["newPassword"] = validation.Validate(*req.NewPassword, passwordRules...)
		errs["currentPassword"] = validation.Validate(req.CurrentPassword, validation.Required)
	}

	return errs.Filter()
}

func validateTier(tier models.Tier) error {
	return validation.Validate(tier,
		validation.Required,
		validation.In(models.TierBasic, models.TierPro, models.TierEnterprise),
	)
}

// jsonContent applies is.JSON to a possibly nil string pointer.
func jsonContent(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	return validation.Validate(v, contentRules...)
}
