package models

// Credentials is the body of the register and login endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token when it is not sent as a cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User *User `json:"user,omitempty"`
	TokenPair
}

// AuthStatus reports whether the caller holds a valid access token.
type AuthStatus struct {
	IsLoggedIn bool  `json:"isLoggedIn"`
	User       *User `json:"user,omitempty"`
}

// ProfileUpdateRequest is the body of PUT /api/users/profile.
type ProfileUpdateRequest struct {
	Email           *string `json:"email,omitempty"`
	CurrentPassword string  `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
}

// TierUpdateRequest is the body of PUT /api/users/tier.
type TierUpdateRequest struct {
	Tier Tier `json:"tier"`
}

// DeleteAccountRequest confirms account deletion with the current password.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// CreateFolderRequest is the body of POST /api/folders and
// POST /api/folders/{id}/subfolders.
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// RenameFolderRequest is the body of PUT /api/folders/{id}.
type RenameFolderRequest struct {
	Name string `json:"name"`
}

// CreateQuoteRequest is the body of POST /api/quotes.
type CreateQuoteRequest struct {
	Content         string  `json:"content"`
	Width           *int    `json:"width,omitempty"`
	Height          *int    `json:"height,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	BackgroundImage *string `json:"backgroundImage,omitempty"`
	FolderID        *int64  `json:"folderId,omitempty"`
	TagIDs          []int64 `json:"tagIds,omitempty"`
}

// CreateTagRequest is the body of POST /api/tags.
type CreateTagRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
