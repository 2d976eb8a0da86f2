package attachments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Postify/internal/core/files"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestReaper(now time.Time) (*Reaper, *fakeRepo, *memStore) {
	repo := newFakeRepo()
	store := newMemStore()
	r := NewReaper(repo, store, passthroughTx{}, WithClock(func() time.Time { return now }))
	return r, repo, store
}

func TestSweep_ReclaimsOldUnbound(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, repo, store := newTestReaper(now)

	repo.seed(&Attachment{ID: 1, Name: "old.png", CreatedAt: now.Add(-2 * time.Hour)})
	store.put(files.FolderAttachments, "old.png")

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, repo.has(1))
	exists, _ := store.Exists(context.Background(), files.FolderAttachments, "old.png")
	assert.False(t, exists)
}

func TestSweep_KeepsRecentUnbound(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, repo, store := newTestReaper(now)

	repo.seed(&Attachment{ID: 1, Name: "fresh.png", CreatedAt: now.Add(-30 * time.Minute)})
	store.put(files.FolderAttachments, "fresh.png")

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, repo.has(1))
}

func TestSweep_NeverReclaimsBound(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, repo, store := newTestReaper(now)

	repo.seed(&Attachment{ID: 1, Name: "bound.png", CreatedAt: now.Add(-48 * time.Hour), PostID: int64Ptr(7)})
	store.put(files.FolderAttachments, "bound.png")

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, repo.has(1))
	exists, _ := store.Exists(context.Background(), files.FolderAttachments, "bound.png")
	assert.True(t, exists)
}

func TestSweep_AdvancingClock(t *testing.T) {
	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	store := newMemStore()
	r := NewReaper(repo, store, passthroughTx{}, WithClock(func() time.Time { return current }))

	repo.seed(&Attachment{ID: 1, Name: "a.png", CreatedAt: current})

	n, err := r.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	current = current.Add(61 * time.Minute)
	n, err = r.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, repo.has(1))
}

func TestSweep_MissingFileStillDeletesRecord(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, repo, _ := newTestReaper(now)

	repo.seed(&Attachment{ID: 1, Name: "gone.png", CreatedAt: now.Add(-2 * time.Hour)})

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, repo.has(1))
}

func TestSweep_ItemFailureContinues(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, repo, _ := newTestReaper(now)

	repo.seed(&Attachment{ID: 1, Name: "a.png", CreatedAt: now.Add(-2 * time.Hour)})
	repo.seed(&Attachment{ID: 2, Name: "b.png", CreatedAt: now.Add(-2 * time.Hour)})
	repo.failDel[1] = errors.New("connection reset")

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, repo.has(1))
	assert.False(t, repo.has(2))
}

func TestSweep_FileDeleteFailureKeepsRecord(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, repo, store := newTestReaper(now)
	store.delErr = errors.New("permission denied")

	repo.seed(&Attachment{ID: 1, Name: "a.png", CreatedAt: now.Add(-2 * time.Hour)})

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, repo.has(1))
}

// claimingRepo binds the attachment between listing and locking
type claimingRepo struct {
	*fakeRepo
}

func (c claimingRepo) LockUnbound(ctx context.Context, id int64) (*Attachment, error) {
	_, _ = c.fakeRepo.Claim(ctx, id, 99)
	return c.fakeRepo.LockUnbound(ctx, id)
}

func TestSweep_SkipsConcurrentlyClaimed(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	store := newMemStore()
	r := NewReaper(claimingRepo{repo}, store, passthroughTx{}, WithClock(func() time.Time { return now }))

	repo.seed(&Attachment{ID: 1, Name: "race.png", CreatedAt: now.Add(-2 * time.Hour)})
	store.put(files.FolderAttachments, "race.png")

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, repo.has(1))
	exists, _ := store.Exists(context.Background(), files.FolderAttachments, "race.png")
	assert.True(t, exists)
}

func TestSweep_PersistentFailuresDoNotStarveNewerRows(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	r := NewReaper(repo, newMemStore(), passthroughTx{},
		WithClock(func() time.Time { return now }),
		WithBatchSize(2),
	)

	for id := int64(1); id <= 4; id++ {
		repo.seed(&Attachment{ID: id, Name: "f.png", CreatedAt: now.Add(-2 * time.Hour)})
	}
	repo.failDel[1] = errors.New("permission denied")
	repo.failDel[2] = errors.New("permission denied")

	n, err := r.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, repo.has(3))
	assert.False(t, repo.has(4))

	// Nothing lies past id 4, so the cursor wraps and the failing rows come back
	delete(repo.failDel, 1)
	n, err = r.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, repo.has(1))
	assert.True(t, repo.has(2))
}

func TestSweep_CustomThreshold(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	r := NewReaper(repo, newMemStore(), passthroughTx{},
		WithClock(func() time.Time { return now }),
		WithAgeThreshold(10*time.Minute),
	)

	repo.seed(&Attachment{ID: 1, Name: "a.png", CreatedAt: now.Add(-15 * time.Minute)})

	n, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReaper_StartStop(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, repo, _ := newTestReaper(now)
	repo.seed(&Attachment{ID: 1, Name: "a.png", CreatedAt: now.Add(-2 * time.Hour)})

	r.Start(10 * time.Millisecond)
	r.Start(10 * time.Millisecond)

	assert.Eventually(t, func() bool { return !repo.has(1) }, 2*time.Second, 10*time.Millisecond)

	r.Stop()
	r.Stop()
}

func TestReaper_StopWithoutStart(t *testing.T) {
	r, _, _ := newTestReaper(time.Now())
	assert.NotPanics(t, r.Stop)
}

func TestReaper_DisabledInterval(t *testing.T) {
	r, _, _ := newTestReaper(time.Now())
	r.Start(0)
	assert.Nil(t, r.cancel)
}
