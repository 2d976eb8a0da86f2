package attachments

import (
	"context"
	"sort"
	"sync"
	"time"

	"Postify/internal/core/files"
)

type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]*Attachment
	failDel map[int64]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]*Attachment{}, failDel: map[int64]error{}}
}

func (f *fakeRepo) Create(_ context.Context, a *Attachment) (*Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *a
	cp.ID = f.nextID
	f.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) Claim(_ context.Context, id, postID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.PostID != nil {
		return false, nil
	}
	a.PostID = &postID
	return true, nil
}

func (f *fakeRepo) ListUnboundBefore(_ context.Context, cutoff time.Time, afterID int64, limit int) ([]*Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Attachment
	for _, a := range f.rows {
		if a.PostID == nil && a.CreatedAt.Before(cutoff) && a.ID > afterID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) LockUnbound(_ context.Context, id int64) (*Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.PostID != nil {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failDel[id]; err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	return ok
}

// seed inserts a row directly, bypassing Create
func (f *fakeRepo) seed(a *Attachment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.rows[a.ID] = &cp
	if a.ID > f.nextID {
		f.nextID = a.ID
	}
}

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	delErr  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) key(folder files.Folder, name string) string {
	return string(folder) + "/" + name
}

func (m *memStore) Save(_ context.Context, folder files.Folder, data []byte, ext string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	name := files.NewFileName(ext)
	m.data[m.key(folder, name)] = data
	return name, nil
}

func (m *memStore) Delete(_ context.Context, folder files.Folder, name string) error {
	if m.delErr != nil {
		return m.delErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, m.key(folder, name))
	return nil
}

func (m *memStore) Exists(_ context.Context, folder files.Folder, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[m.key(folder, name)]
	return ok, nil
}

func (m *memStore) put(folder files.Folder, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key(folder, name)] = []byte("x")
}

// passthroughTx runs fn directly; the fakes have no rollback
type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
