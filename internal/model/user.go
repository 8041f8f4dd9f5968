// Package model defines the data structures used throughout the application.
package model

// User represents an account that can log in to the admin UI.
//
// In practice there is exactly one row — the "admin" user seeded at first
// startup — but nothing here assumes that beyond the UNIQUE constraint on
// username in the database.
//
// WHY PasswordHash `json:"-"`?
// The dash tells encoding/json to NEVER serialize this field. Even though no
// handler currently returns a User, the tag means a future /api/me style
// endpoint can't accidentally leak the bcrypt hash.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt hash, never plaintext, never serialized
}
