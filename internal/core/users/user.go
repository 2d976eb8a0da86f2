package users

import (
	"time"
)

// User is an account that can publish posts.
// PasswordHash is opaque to everything except the PasswordHasher.
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Image        *string   `json:"image,omitempty" db:"image"`
	Username     string    `json:"username" db:"username"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
}

// CreateUserRequest represents the input for registering a new user
type CreateUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// UpdateUserRequest represents a profile update.
// Image, when set, is a base64-encoded PNG or JPEG.
type UpdateUserRequest struct {
	Image       *string `json:"image,omitempty"`
	DisplayName string  `json:"displayName"`
}

// UserView is the public representation of a user
type UserView struct {
	Image       *string `json:"image,omitempty"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	ID          int64   `json:"id"`
}

// ToView strips private fields from a user
func (u *User) ToView() *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Image:       u.Image,
	}
}
