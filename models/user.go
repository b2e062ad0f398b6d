package models

import "time"

// Tier is the subscription tier of a user account. It drives product-level
// policies such as the maximum folder nesting depth.
type Tier string

const (
	TierBasic      Tier = "BASIC"
	TierPro        Tier = "PRO"
	TierEnterprise Tier = "ENTERPRISE"
)

// Tiers lists every tier accepted by the API.
var Tiers = []Tier{TierBasic, TierPro, TierEnterprise}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	for _, known := range Tiers {
		if t == known {
			return true
		}
	}
	return false
}

// MaxFolderDepth returns how many folder levels the tier allows.
// A root folder is level 1. Zero means unlimited.
func (t Tier) MaxFolderDepth() int {
	switch t {
	case TierBasic:
		return 1
	case TierPro:
		return 3
	case TierEnterprise:
		return 0
	default:
		return 1
	}
}

// User represents an account entity used for authentication and authorization.
// The password hash never leaves the server.
type User struct {
	// UserID is the unique identifier of the user assigned by the store.
	UserID int64 `json:"id"`

	// Email is the unique login of the user.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// Tier is the subscription tier of the account.
	Tier Tier `json:"tier"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate is a partial update of a user's profile. Nil fields are left
// untouched.
type UserUpdate struct {
	UserID       int64
	Email        *string
	PasswordHash *string
	Tier         *Tier
}
