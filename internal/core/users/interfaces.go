package users

import (
	"context"

	"Postify/internal/core/pagination"
)

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create inserts a user and fills in ID and timestamps.
	// Returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List returns users ordered by id, skipping excludeID when it is non-zero,
	// together with the total number of matching users.
	List(ctx context.Context, excludeID int64, limit, offset int) ([]*User, int64, error)

	// Update persists display name and image for an existing user
	Update(ctx context.Context, user *User) (*User, error)
}

// PasswordHasher hashes and verifies credential secrets
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// UserService defines the interface for user business logic
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// ListUsers pages through users; viewerID (0 when anonymous) is left out of the result.
	ListUsers(ctx context.Context, viewerID int64, req pagination.Request) (*pagination.Page[*User], error)

	// UpdateUser changes a user's own profile. actorID must equal targetID.
	UpdateUser(ctx context.Context, actorID, targetID int64, req UpdateUserRequest) (*User, error)

	// Authenticate checks a username/password pair
	Authenticate(ctx context.Context, username, password string) (*User, error)
}
