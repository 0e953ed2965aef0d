// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — no ORM base class, no
// inheritance. The repository layer maps these to and from SQL rows.
package model

import "time"

// User represents a registered account.
//
// WHY PasswordHash AND NOT Password?
// We never store the plaintext password. Registration runs the submitted
// password through bcrypt (see internal/auth) and only the resulting hash is
// persisted. The field name makes it impossible to confuse the two — code
// that compares PasswordHash against user input with == is obviously wrong
// at a glance.
//
// Username and Email both carry UNIQUE constraints in the DB. Registration
// relies on those constraints (a single atomic INSERT) rather than a
// check-then-insert, so two concurrent registrations of the same username
// cannot both slip through.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialized
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
}
