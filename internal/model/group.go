package model

import "time"

// Group is a named collection of bucket list items shared between users.
// Any authenticated user can view a group's combined items; an item belongs
// to at most one group.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is one row of the server-side session store.
//
// The token is an opaque random value handed to the browser in an HttpOnly
// cookie. Unlike a JWT there is nothing to decode — possession of a token
// that matches an unexpired row IS the authentication. Logging out deletes
// the row, which revokes the session immediately on every device holding
// that cookie.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
