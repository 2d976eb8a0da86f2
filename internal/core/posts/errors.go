package posts

import (
	"errors"

	"Postify/internal/core/validation"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post does not exist
	ErrNotFound = errors.New("post not found")

	// ErrAttachmentNotFound is returned when the attachment named in a create
	// request does not exist, or was reclaimed before it could be bound
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrForbidden is returned when the caller may not modify the post.
	// A missing post and another user's post both produce this error.
	ErrForbidden = errors.New("not allowed to modify this post")

	// ErrAttachmentAlreadyBound is returned when the attachment belongs to another post
	ErrAttachmentAlreadyBound = validation.NewError("attachment", "attachment is already used by another post")
)

// IsNotFound checks if err is one of the post package's not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAttachmentNotFound)
}
