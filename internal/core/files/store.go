package files

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrEmptyParameter is returned when a folder or file name is empty
	ErrEmptyParameter = errors.New("required parameter is empty")
	// ErrInvalidBasePath is returned when the storage root is empty
	ErrInvalidBasePath = errors.New("storage base path cannot be empty")
	// ErrEmptyData is returned when asked to store zero bytes
	ErrEmptyData = errors.New("file data cannot be empty")
)

// Folder groups stored files by purpose under the storage root
type Folder string

const (
	// FolderAttachments holds post attachment images
	FolderAttachments Folder = "attachments"
	// FolderProfile holds user avatar images
	FolderProfile Folder = "profile"
)

// Store persists uploaded file bytes.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save writes data under folder with a freshly generated unique name.
	// ext, when non-empty, is appended to the generated name (e.g. ".png").
	// Returns the generated name.
	Save(ctx context.Context, folder Folder, data []byte, ext string) (string, error)

	// Delete removes the named file. A file that is already gone is not an error.
	Delete(ctx context.Context, folder Folder, name string) error

	// Exists reports whether the named file is present.
	Exists(ctx context.Context, folder Folder, name string) (bool, error)
}

// NewFileName generates a unique stored-file name, distinct from any client upload name
func NewFileName(ext string) string {
	name := strings.ReplaceAll(uuid.New().String(), "-", "")
	if ext == "" {
		return name
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return name + makeNameSafe(ext)
}

// makeNameSafe strips anything that could escape the storage folder.
func makeNameSafe(name string) string {
	s := strings.ReplaceAll(name, "/", "")
	s = strings.ReplaceAll(s, "\\", "")
	s = strings.ReplaceAll(s, "..", "")
	s = strings.ReplaceAll(s, "\x00", "")
	return s
}
