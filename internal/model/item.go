package model

import "time"

// BucketListItem is a single dated goal on a user's bucket list.
//
// CompletionDate is a *time.Time because "no target date yet" is a valid
// state: a nil pointer maps to NULL in the DB, and the edit form shows an
// empty date field. The same applies to GroupID — most items belong to no
// group at all.
//
// UserID is always taken from the authenticated session, never from the
// request body, and is immutable after creation — as is CreatedAt.
type BucketListItem struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UserID         string     `json:"userId"`
	GroupID        *string    `json:"groupId,omitempty"`
}
