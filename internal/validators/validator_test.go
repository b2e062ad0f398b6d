// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-quote-keeper/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func idPtr(i int64) *int64    { return &i }

func TestNewValidator(t *testing.T) {
	require.NotNil(t, NewValidator())
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidate_Credentials(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		creds   models.Credentials
		fields  []string
		wantErr bool
	}{
		{"valid registration", models.Credentials{Email: "ann@example.com", Password: "Secr3t!pass"}, nil, false},
		{"bad email", models.Credentials{Email: "not-an-email", Password: "Secr3t!pass"}, nil, true},
		{"empty email", models.Credentials{Password: "Secr3t!pass"}, nil, true},
		{"short password", models.Credentials{Email: "ann@example.com", Password: "S3t!a"}, nil, true},
		{"no digit", models.Credentials{Email: "ann@example.com", Password: "Secret!pass"}, nil, true},
		{"no upper", models.Credentials{Email: "ann@example.com", Password: "secr3t!pass"}, nil, true},
		{"no special", models.Credentials{Email: "ann@example.com", Password: "Secr3tpass"}, nil, true},
		{"too long", models.Credentials{Email: "ann@example.com", Password: "Aa1!" + strings.Repeat("x", 80)}, nil, true},
		{"login accepts weak password", models.Credentials{Email: "ann@example.com", Password: "weak"}, []string{FieldEmail, FieldPasswordPresent}, false},
		{"login requires password", models.Credentials{Email: "ann@example.com"}, []string{FieldEmail, FieldPasswordPresent}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.creds, tt.fields...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_UnknownField(t *testing.T) {
	err := NewValidator().Validate(context.Background(), models.Credentials{}, "bogus")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestValidate_Folder(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	t.Run("valid root", func(t *testing.T) {
		assert.NoError(t, v.Validate(ctx, models.Folder{Name: "Stoics", OwnerID: 1}))
	})

	t.Run("blank name", func(t *testing.T) {
		err := v.Validate(ctx, models.Folder{Name: "   ", OwnerID: 1})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("name measured in runes after trimming", func(t *testing.T) {
		name := "  " + strings.Repeat("é", MaxFolderNameLength) + "  "
		assert.NoError(t, v.Validate(ctx, models.Folder{Name: name, OwnerID: 1}))

		name = strings.Repeat("é", MaxFolderNameLength+1)
		assert.ErrorIs(t, v.Validate(ctx, models.Folder{Name: name, OwnerID: 1}), ErrInvalidInput)
	})

	t.Run("missing owner", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, models.Folder{Name: "x"}), ErrInvalidInput)
	})

	t.Run("parent required when asked", func(t *testing.T) {
		f := models.Folder{Name: "x", OwnerID: 1}
		assert.ErrorIs(t, v.Validate(ctx, f, FieldParentID), ErrInvalidInput)

		f.ParentID = idPtr(-3)
		assert.ErrorIs(t, v.Validate(ctx, f, FieldParentID), ErrInvalidInput)

		f.ParentID = idPtr(3)
		assert.NoError(t, v.Validate(ctx, f, FieldName, FieldOwnerID, FieldParentID))
	})

	t.Run("id", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, models.Folder{}, FieldID), ErrInvalidInput)
		assert.NoError(t, v.Validate(ctx, models.Folder{ID: 5}, FieldID))
	})
}

func TestValidate_CreateQuote(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	valid := func() models.CreateQuoteRequest {
		return models.CreateQuoteRequest{
			Content:         `{"type":"doc"}`,
			Width:           intPtr(800),
			Height:          intPtr(600),
			BackgroundColor: strPtr("#A0b1C2"),
			TagIDs:          []int64{1, 2},
		}
	}

	assert.NoError(t, v.Validate(ctx, valid()))
	assert.NoError(t, v.Validate(ctx, models.CreateQuoteRequest{Content: `"plain"`}))

	tests := []struct {
		name   string
		mutate func(*models.CreateQuoteRequest)
	}{
		{"empty content", func(r *models.CreateQuoteRequest) { r.Content = "" }},
		{"content not json", func(r *models.CreateQuoteRequest) { r.Content = "{oops" }},
		{"width too small", func(r *models.CreateQuoteRequest) { r.Width = intPtr(99) }},
		{"height too large", func(r *models.CreateQuoteRequest) { r.Height = intPtr(4097) }},
		{"zero width", func(r *models.CreateQuoteRequest) { r.Width = intPtr(0) }},
		{"bad color", func(r *models.CreateQuoteRequest) { r.BackgroundColor = strPtr("red") }},
		{"empty color", func(r *models.CreateQuoteRequest) { r.BackgroundColor = strPtr("") }},
		{"bad folder", func(r *models.CreateQuoteRequest) { r.FolderID = idPtr(0) }},
		{"bad tag", func(r *models.CreateQuoteRequest) { r.TagIDs = []int64{1, -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			assert.ErrorIs(t, v.Validate(ctx, &req), ErrInvalidInput)
		})
	}
}

func TestValidate_QuoteUpdate(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	err := v.Validate(ctx, models.QuoteUpdate{ID: 1})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, v.Validate(ctx, models.QuoteUpdate{ID: 1, Width: intPtr(100)}))
	assert.NoError(t, v.Validate(ctx, models.QuoteUpdate{ID: 1, BackgroundColor: models.OptionalString{Present: true}}))
	assert.NoError(t, v.Validate(ctx, models.QuoteUpdate{ID: 1, FolderID: models.OptionalID{Present: true}}))

	assert.ErrorIs(t, v.Validate(ctx, models.QuoteUpdate{ID: 1, Content: strPtr("nope")}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(ctx, models.QuoteUpdate{ID: 1, BackgroundColor: models.SetString("#12345")}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(ctx, models.QuoteUpdate{ID: 1, FolderID: models.SetID(-1)}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(ctx, models.QuoteUpdate{ID: 1, TagIDs: &[]int64{0}}), ErrInvalidInput)
}

func TestValidate_QuoteFilter(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.QuoteFilter{UserID: 1, Limit: 20, Search: "love"}))
	assert.ErrorIs(t, v.Validate(ctx, models.QuoteFilter{UserID: 1, Limit: MaxQuotePageSize + 1}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(ctx, models.QuoteFilter{UserID: 1, TagID: idPtr(0)}), ErrInvalidInput)
}

func TestValidate_Tags(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.CreateTagRequest{Name: "Stoicism", Color: strPtr("#000000")}))
	assert.ErrorIs(t, v.Validate(ctx, models.CreateTagRequest{Name: " "}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(ctx, models.CreateTagRequest{Name: strings.Repeat("t", MaxTagNameLength+1)}), ErrInvalidInput)

	assert.ErrorIs(t, v.Validate(ctx, models.TagUpdate{ID: 1}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.TagUpdate{ID: 1, Color: models.OptionalString{Present: true}}))
	assert.ErrorIs(t, v.Validate(ctx, &models.TagUpdate{ID: 1, Name: strPtr("")}), ErrInvalidInput)
}

func TestValidate_ProfileAndTier(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdateRequest{}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.ProfileUpdateRequest{Email: strPtr("new@example.com")}))
	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdateRequest{NewPassword: strPtr("N3w!passw")}), ErrInvalidInput, "current password is required")
	assert.NoError(t, v.Validate(ctx, models.ProfileUpdateRequest{NewPassword: strPtr("N3w!passw"), CurrentPassword: "old"}))

	for _, tier := range models.Tiers {
		assert.NoError(t, v.Validate(ctx, models.TierUpdateRequest{Tier: tier}))
	}
	assert.ErrorIs(t, v.Validate(ctx, models.TierUpdateRequest{Tier: "GOLD"}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(ctx, models.Tier("")), ErrInvalidInput)
}
