package users

import (
	"errors"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when the username belongs to another user
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when a user tries to modify another user's account
	ErrForbidden = errors.New("not allowed to modify this user")
)

// IsNotFound checks if err is (or wraps) ErrUserNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
