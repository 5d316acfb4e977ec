package repository

import (
	"context"
	"errors"

	"MusicHub/model"
)

var (
	// ErrDuplicateUser is returned when a user with the same email already exists.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser stores user and fills in its ID and CreatedAt.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// StreamRepository persists per-song play counters.
type StreamRepository interface {
	// Increment atomically adds one play to songID, creating the counter
	// with streams = 1 when it does not exist, and returns the new state.
	Increment(ctx context.Context, songID string) (*model.StreamCount, error)
	ListAll(ctx context.Context) ([]model.StreamCount, error)
}
