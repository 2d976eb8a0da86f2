package posts

import (
	"context"
	"sort"
	"sync"

	"Postify/internal/core/attachments"
	"Postify/internal/core/files"
	"Postify/internal/core/users"
)

type fakePostRepo struct {
	mu          sync.Mutex
	nextID      int64
	rows        map[int64]*Post
	attachments *fakeAttachmentStore
	users       *fakeUsers
	getErr      error
}

func newFakePostRepo(att *fakeAttachmentStore, u *fakeUsers) *fakePostRepo {
	return &fakePostRepo{rows: map[int64]*Post{}, attachments: att, users: u}
}

func (f *fakePostRepo) Create(_ context.Context, p *Post) (*Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *p
	cp.ID = f.nextID
	f.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

// hydrate fills Author and Attachment the way the SQL join would
func (f *fakePostRepo) hydrate(p *Post) *Post {
	cp := *p
	if f.users != nil {
		cp.Author = f.users.byID(p.UserID)
	}
	if f.attachments != nil {
		cp.Attachment = f.attachments.forPost(p.ID)
	}
	return &cp
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f.hydrate(p), nil
}

func (f *fakePostRepo) matching(filter Filter) []*Post {
	var out []*Post
	for _, p := range f.rows {
		if filter.Matches(p) {
			out = append(out, f.hydrate(p))
		}
	}
	return out
}

func (f *fakePostRepo) Find(_ context.Context, filter Filter, order Sort, limit, offset int) ([]*Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.matching(filter)
	sort.Slice(out, func(i, j int) bool { return order.Less(out[i], out[j]) })
	if offset >= len(out) {
		return []*Post{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) Count(_ context.Context, filter Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.matching(filter))), nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakePostRepo) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := make(map[int64]*Post, len(f.rows))
	for k, v := range f.rows {
		cp := *v
		saved[k] = &cp
	}
	nextID := f.nextID
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.rows = saved
		f.nextID = nextID
	}
}

// seedPosts inserts posts with ids 1..n, all by userID
func (f *fakePostRepo) seedPosts(n int, userID int64) {
	for i := 0; i < n; i++ {
		_, _ = f.Create(context.Background(), &Post{Content: "seeded content", UserID: userID})
	}
}

type fakeAttachmentStore struct {
	mu   sync.Mutex
	rows map[int64]*attachments.Attachment
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{rows: map[int64]*attachments.Attachment{}}
}

func (f *fakeAttachmentStore) add(a *attachments.Attachment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.rows[a.ID] = &cp
}

func (f *fakeAttachmentStore) has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	return ok
}

func (f *fakeAttachmentStore) forPost(postID int64) *attachments.Attachment {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.PostID != nil && *a.PostID == postID {
			cp := *a
			return &cp
		}
	}
	return nil
}

func (f *fakeAttachmentStore) GetByID(_ context.Context, id int64) (*attachments.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, attachments.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttachmentStore) Claim(_ context.Context, id, postID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.PostID != nil {
		return false, nil
	}
	a.PostID = &postID
	return true, nil
}

func (f *fakeAttachmentStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeAttachmentStore) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := make(map[int64]*attachments.Attachment, len(f.rows))
	for k, v := range f.rows {
		cp := *v
		saved[k] = &cp
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.rows = saved
	}
}

type fakeUsers struct {
	byName map[string]*users.User
}

func newFakeUsers(list ...*users.User) *fakeUsers {
	f := &fakeUsers{byName: map[string]*users.User{}}
	for _, u := range list {
		f.byName[u.Username] = u
	}
	return f
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*users.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) byID(id int64) *users.User {
	for _, u := range f.byName {
		if u.ID == id {
			return u
		}
	}
	return nil
}

type snapshotter interface {
	snapshot() func()
}

// fakeTx restores every participating store when fn fails
type fakeTx struct {
	stores []snapshotter
	calls  int
}

func (t *fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	restores := make([]func(), 0, len(t.stores))
	for _, s := range t.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

type memFiles struct {
	mu     sync.Mutex
	data   map[string]bool
	delErr error
}

func newMemFiles() *memFiles {
	return &memFiles{data: map[string]bool{}}
}

func (m *memFiles) Save(_ context.Context, folder files.Folder, _ []byte, ext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := files.NewFileName(ext)
	m.data[string(folder)+"/"+name] = true
	return name, nil
}

func (m *memFiles) Delete(_ context.Context, folder files.Folder, name string) error {
	if m.delErr != nil {
		return m.delErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(folder)+"/"+name)
	return nil
}

func (m *memFiles) Exists(_ context.Context, folder files.Folder, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[string(folder)+"/"+name], nil
}

func (m *memFiles) put(folder files.Folder, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(folder)+"/"+name] = true
}

// fixture bundles a fully wired post service over fakes
type fixture struct {
	svc         Service
	posts       *fakePostRepo
	attachments *fakeAttachmentStore
	users       *fakeUsers
	files       *memFiles
	tx          *fakeTx
	feed        *FeedEngine
	gate        *AuthorizationGate
}

func newFixture(maxAfter int, opts ...ServiceOption) *fixture {
	att := newFakeAttachmentStore()
	u := newFakeUsers(
		&users.User{ID: 1, Username: "user1", DisplayName: "display1"},
		&users.User{ID: 2, Username: "user2", DisplayName: "display2"},
	)
	repo := newFakePostRepo(att, u)
	fs := newMemFiles()
	tx := &fakeTx{stores: []snapshotter{repo, att}}

	feed := NewFeedEngine(repo, u, maxAfter)
	gate := NewAuthorizationGate(repo)
	svc := NewPostService(repo, tx, feed,
		NewAttachmentBinder(att),
		gate,
		NewDeletionOrchestrator(repo, att, fs, tx),
		opts...,
	)
	return &fixture{
		svc:         svc,
		posts:       repo,
		attachments: att,
		users:       u,
		files:       fs,
		tx:          tx,
		feed:        feed,
		gate:        gate,
	}
}

func ids(posts []*Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
