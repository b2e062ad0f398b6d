package models

import "time"

// Folder is a named container owned by exactly one user. Folders form a
// per-user forest through ParentID; children and quotes are derived and are
// not part of the stored record.
type Folder struct {
	// ID is assigned by the store on creation.
	ID int64 `json:"id"`

	// Name is the display name, never empty after trimming.
	Name string `json:"name"`

	// OwnerID is the owning user. It never changes after creation.
	OwnerID int64 `json:"ownerId"`

	// ParentID references the parent folder. Nil means root-level.
	ParentID *int64 `json:"parentId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Folder model.
func (f Folder) TableName() string {
	return "folders"
}

// IsRoot reports whether the folder has no parent.
func (f Folder) IsRoot() bool {
	return f.ParentID == nil
}

// FolderSummary is a shallow listing entry: the folder plus the number of
// its immediate subfolders and quotes.
type FolderSummary struct {
	Folder
	SubfolderCount int `json:"subfolderCount"`
	QuoteCount     int `json:"quoteCount"`
}

// FolderTree is a folder with its descendants and their quotes loaded
// recursively.
type FolderTree struct {
	Folder
	SubFolders []*FolderTree `json:"subFolders"`
	Quotes     []Quote       `json:"quotes"`
}

// NewFolderTree wraps f into a tree node with empty, non-nil children and
// quotes so the node serializes as [] rather than null.
func NewFolderTree(f Folder) *FolderTree {
	return &FolderTree{
		Folder:     f,
		SubFolders: []*FolderTree{},
		Quotes:     []Quote{},
	}
}

// Find returns the node with the given folder id, searching depth-first.
func (t *FolderTree) Find(id int64) *FolderTree {
	if t == nil {
		return nil
	}
	if t.ID == id {
		return t
	}
	for _, child := range t.SubFolders {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Size returns the number of folders in the tree, the root included.
func (t *FolderTree) Size() int {
	if t == nil {
		return 0
	}
	n := 1
	for _, child := range t.SubFolders {
		n += child.Size()
	}
	return n
}
