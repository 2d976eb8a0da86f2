package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Postify/internal/api/middleware"
	"Postify/internal/auth"
)

func TestRegisterImageRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "attachments"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profile"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile", "avatar.png"), []byte("png-bytes"), 0o644))

	r := chi.NewRouter()
	RegisterImageRoutes(r, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/profile/avatar.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/attachments/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/profile/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutatingRoutesRequireAuth(t *testing.T) {
	tokens, err := auth.NewTokenManager("test-secret-that-is-long-enough", time.Hour)
	require.NoError(t, err)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	// Handlers are never reached without a token, so nil services are fine here
	RegisterPostRoutes(r, nil, authMiddleware)
	RegisterAttachmentRoutes(r, nil, authMiddleware, 1024)
	RegisterUserRoutes(r, nil, tokens, authMiddleware, 1024)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/posts"},
		{http.MethodDelete, "/posts/1"},
		{http.MethodPost, "/posts/upload"},
		{http.MethodPut, "/users/1"},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
