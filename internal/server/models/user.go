// Package models defines server-side data models persisted in the store.
package models

import "time"

// User is an account. Email is the login key and is unique across users;
// PasswordHash is a bcrypt hash, never the plaintext.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
