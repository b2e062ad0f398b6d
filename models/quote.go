package models

import "time"

// Default and bounding dimensions of a quote card, in pixels.
const (
	DefaultQuoteWidth  = 800
	DefaultQuoteHeight = 600
	MinQuoteDimension  = 100
	MaxQuoteDimension  = 4096
)

// Quote is a quote card authored by a user. Content holds the rich-text
// document produced by the editor and is stored opaquely.
type Quote struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`

	// FolderID references the folder holding the quote. Nil means unfiled.
	FolderID *int64 `json:"folderId"`

	Content string `json:"content"`

	Width           int     `json:"width"`
	Height          int     `json:"height"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	BackgroundImage *string `json:"backgroundImage,omitempty"`

	Tags []Tag `json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Quote model.
func (q Quote) TableName() string {
	return "quotes"
}

// QuoteFilter narrows a quote listing. Zero values mean "no filter".
type QuoteFilter struct {
	UserID   int64  `json:"-"`
	FolderID *int64 `json:"folderId,omitempty"`
	TagID    *int64 `json:"tagId,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    uint64 `json:"limit,omitempty"`
	Offset   uint64 `json:"offset,omitempty"`
}

// QuoteUpdate is a partial update of a quote. Nil pointers and absent
// optional fields leave the stored value untouched.
type QuoteUpdate struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"-"`

	Content         *string        `json:"content,omitempty"`
	Width           *int           `json:"width,omitempty"`
	Height          *int           `json:"height,omitempty"`
	BackgroundColor OptionalString `json:"backgroundColor"`
	BackgroundImage OptionalString `json:"backgroundImage"`
	FolderID        OptionalID     `json:"folderId"`
	TagIDs          *[]int64       `json:"tagIds,omitempty"`
}

// IsEmpty reports whether the update carries no changes at all.
func (u QuoteUpdate) IsEmpty() bool {
	return u.Content == nil &&
		u.Width == nil &&
		u.Height == nil &&
		!u.BackgroundColor.Present &&
		!u.BackgroundImage.Present &&
		!u.FolderID.Present &&
		u.TagIDs == nil
}
