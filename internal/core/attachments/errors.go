package attachments

import (
	"errors"

	"Postify/internal/core/validation"
)

var (
	// ErrNotFound is returned when an attachment does not exist, or when a
	// guarded lookup finds it already bound
	ErrNotFound = errors.New("attachment not found")

	// ErrEmptyUpload is returned when an upload carries no bytes
	ErrEmptyUpload = validation.NewError("file", "file must not be empty")

	// ErrUnsupportedType is returned when an upload is not a PNG, JPEG or GIF image
	ErrUnsupportedType = validation.NewError("file", "only PNG, JPG and GIF images are allowed")
)

// IsNotFound checks if err is (or wraps) ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
