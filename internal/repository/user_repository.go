package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// UserUpdate is a sparse set of profile field changes.
type UserUpdate struct {
	Username          *string
	Email             *string
	PasswordHash      *string
	ProfilePictureURL *string
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil &&
		u.PasswordHash == nil && u.ProfilePictureURL == nil
}

// UserRepository is the persistence boundary for user accounts.
type UserRepository interface {
	// Create inserts a user and returns the stored row.
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	// GetByEmail returns a user by email, or (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByID returns a user by id, or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Update applies a sparse profile update and returns the stored row,
	// or (nil, nil) when the user does not exist.
	Update(ctx context.Context, id string, set UserUpdate) (*entity.User, error)
}
