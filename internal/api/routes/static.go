package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"Postify/internal/core/files"
)

// RegisterImageRoutes serves stored files under /images/{folder}/{name}
func RegisterImageRoutes(r chi.Router, uploadDir string) {
	for _, folder := range []files.Folder{files.FolderAttachments, files.FolderProfile} {
		prefix := "/images/" + string(folder)
		fs := http.StripPrefix(prefix, http.FileServer(noListing{http.Dir(filepath.Join(uploadDir, string(folder)))}))
		r.Get(prefix+"/*", fs.ServeHTTP)
	}
}

// noListing hides directory indexes
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	if strings.HasSuffix(name, "/") {
		return nil, os.ErrNotExist
	}
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
