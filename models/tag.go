package models

import "time"

// TagType distinguishes tags shipped with the application from tags created
// by users.
type TagType string

const (
	TagBuiltin TagType = "BUILTIN"
	TagCustom  TagType = "CUSTOM"
)

// Valid reports whether t is a known tag type.
func (t TagType) Valid() bool {
	return t == TagBuiltin || t == TagCustom
}

// Tag labels quotes. BUILTIN tags have no owner and are visible to everyone;
// CUSTOM tags belong to one user.
type Tag struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Type        TagType `json:"type"`
	UserID      *int64  `json:"userId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Tag model.
func (t Tag) TableName() string {
	return "tags"
}

// OwnedBy reports whether a CUSTOM tag belongs to userID.
func (t Tag) OwnedBy(userID int64) bool {
	return t.Type == TagCustom && t.UserID != nil && *t.UserID == userID
}

// VisibleTo reports whether userID may attach the tag to a quote.
func (t Tag) VisibleTo(userID int64) bool {
	return t.Type == TagBuiltin || t.OwnedBy(userID)
}

// TagUpdate is a partial update of a custom tag.
type TagUpdate struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"-"`

	Name        *string        `json:"name,omitempty"`
	Description OptionalString `json:"description"`
	Color       OptionalString `json:"color"`
}
