package posts

import (
	"context"

	"Postify/internal/core/attachments"
	"Postify/internal/core/pagination"
	"Postify/internal/core/users"
)

// Repository defines post persistence.
// Reads populate Author and Attachment.
type Repository interface {
	// Create inserts the post and fills in its ID
	Create(ctx context.Context, post *Post) (*Post, error)

	// GetByID returns ErrNotFound when the post does not exist
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Find returns posts matching filter in sort order
	Find(ctx context.Context, filter Filter, sort Sort, limit, offset int) ([]*Post, error)

	// Count returns the number of posts matching filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Delete removes the post. A missing post is not an error.
	Delete(ctx context.Context, id int64) error
}

// AttachmentStore is the part of attachment persistence posts depend on
type AttachmentStore interface {
	GetByID(ctx context.Context, id int64) (*attachments.Attachment, error)
	Claim(ctx context.Context, id, postID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// UserResolver looks up the user a feed is scoped to
type UserResolver interface {
	GetUserByUsername(ctx context.Context, username string) (*users.User, error)
}

// Transactor runs fn inside a single database transaction carried by ctx
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service defines the business logic interface for posts.
// An empty username means all users; a non-empty unknown username
// yields users.ErrUserNotFound.
type Service interface {
	// CreatePost validates and stores a post authored by userID,
	// binding the referenced attachment in the same transaction
	CreatePost(ctx context.Context, userID int64, req CreatePostRequest) (*Post, error)

	// ListPosts pages through posts without a cursor
	ListPosts(ctx context.Context, username string, req pagination.Request, sort Sort) (*pagination.Page[*Post], error)

	// ListBefore pages through posts older than cursorID
	ListBefore(ctx context.Context, username string, cursorID int64, req pagination.Request, sort Sort) (*pagination.Page[*Post], error)

	// ListAfter returns posts newer than cursorID
	ListAfter(ctx context.Context, username string, cursorID int64, sort Sort) ([]*Post, error)

	// CountAfter counts posts newer than cursorID
	CountAfter(ctx context.Context, username string, cursorID int64) (int64, error)

	// DeletePost removes a post owned by actorID together with its attachment.
	// Returns ErrForbidden when the post is missing or owned by someone else.
	DeletePost(ctx context.Context, actorID, postID int64) error
}
