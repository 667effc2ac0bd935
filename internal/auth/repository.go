package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when a user with the same username already exists.
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepository provides operations on the users table.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	CountAll(ctx context.Context) (int, error)
}
