package models

import "time"

// User represents an account entity used for authentication.
// PasswordHash is a derived argon2id value and is never serialized.
type User struct {
	// ID is the opaque unique identifier assigned by the store at creation.
	ID string `json:"_id"`

	// FullName is the display name of the user.
	FullName string `json:"fullName"`

	// Email is the unique, normalized (trimmed, lower-cased) lookup key.
	Email string `json:"email"`

	// PasswordHash is populated only when the store is explicitly asked for it.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt changes on any mutation; equal to CreatedAt for now.
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of the user that is safe to hand out to callers.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
