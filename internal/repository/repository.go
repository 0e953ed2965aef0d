// Package repository declares the storage interfaces the service layer
// depends on. The concrete SQLite implementation lives in repository/sqlite;
// tests substitute in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/sakif/bucketlist/internal/model"
)

type UserRepository interface {
	// CreateUser inserts a new user. A username or email collision surfaces
	// as apperror.ErrConflict — uniqueness is enforced by the database, not
	// by a racy pre-check.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *model.BucketListItem) error
	// GetItemByID is scoped to an owner: an item that exists but belongs to
	// a different user is reported as not found, never leaked.
	GetItemByID(ctx context.Context, id, userID string) (*model.BucketListItem, error)
	ListItemsByUser(ctx context.Context, userID string) ([]model.BucketListItem, error)
	ListItemsByGroup(ctx context.Context, groupID string) ([]model.BucketListItem, error)
	UpdateItem(ctx context.Context, item *model.BucketListItem) error
	DeleteItem(ctx context.Context, id, userID string) error
}

type GroupRepository interface {
	CreateGroup(ctx context.Context, group *model.Group) error
	GetGroupByID(ctx context.Context, id string) (*model.Group, error)
	ListGroups(ctx context.Context) ([]model.Group, error)
}

// SessionRepository is the server-side session store behind the auth gate.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}
