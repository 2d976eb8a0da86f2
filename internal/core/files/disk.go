package files

import (
	"context"
	"os"
	"path/filepath"
)

// DiskStore implements Store on the local filesystem.
// Layout: {basePath}/{folder}/{name}
type DiskStore struct {
	basePath string
}

// NewDiskStore creates a DiskStore rooted at basePath and makes sure the
// folder tree exists.
func NewDiskStore(basePath string) (*DiskStore, error) {
	if basePath == "" {
		return nil, ErrInvalidBasePath
	}
	for _, folder := range []Folder{FolderAttachments, FolderProfile} {
		if err := os.MkdirAll(filepath.Join(basePath, string(folder)), 0o755); err != nil {
			return nil, err
		}
	}
	return &DiskStore{basePath: basePath}, nil
}

// BasePath returns the storage root
func (s *DiskStore) BasePath() string {
	return s.basePath
}

// Dir returns the directory backing folder
func (s *DiskStore) Dir(folder Folder) string {
	return filepath.Join(s.basePath, makeNameSafe(string(folder)))
}

func (s *DiskStore) filePath(folder Folder, name string) string {
	return filepath.Join(s.Dir(folder), makeNameSafe(name))
}

func validateParams(folder Folder, name string) error {
	if folder == "" || makeNameSafe(name) == "" {
		return ErrEmptyParameter
	}
	return nil
}

// Save writes data to a temp file and renames it into place so readers
// never observe a partial file.
func (s *DiskStore) Save(ctx context.Context, folder Folder, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyData
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := NewFileName(ext)
	if err := validateParams(folder, name); err != nil {
		return "", err
	}

	path := s.filePath(folder, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}

	return name, nil
}

// Delete removes the named file. Returns nil if it does not exist.
func (s *DiskStore) Delete(ctx context.Context, folder Folder, name string) error {
	if err := validateParams(folder, name); err != nil {
		return err
	}

	err := os.Remove(s.filePath(folder, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the named file is present on disk
func (s *DiskStore) Exists(ctx context.Context, folder Folder, name string) (bool, error) {
	if err := validateParams(folder, name); err != nil {
		return false, err
	}

	_, err := os.Stat(s.filePath(folder, name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
