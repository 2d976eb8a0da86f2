package attachments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"Postify/internal/core/files"
)

const (
	// DefaultAgeThreshold is how long an upload may stay unbound before it is reclaimed
	DefaultAgeThreshold = time.Hour
	// DefaultSweepBatch bounds how many attachments a single sweep examines
	DefaultSweepBatch = 500
)

// errSkip marks an attachment that was claimed between listing and locking
var errSkip = errors.New("attachment no longer unbound")

// ReaperOption configures a Reaper
type ReaperOption func(*Reaper)

// WithClock overrides the time source used to compute the age cutoff
func WithClock(now func() time.Time) ReaperOption {
	return func(r *Reaper) {
		if now != nil {
			r.now = now
		}
	}
}

// WithAgeThreshold overrides DefaultAgeThreshold
func WithAgeThreshold(d time.Duration) ReaperOption {
	return func(r *Reaper) {
		if d > 0 {
			r.threshold = d
		}
	}
}

// WithBatchSize overrides DefaultSweepBatch
func WithBatchSize(n int) ReaperOption {
	return func(r *Reaper) {
		if n > 0 {
			r.batch = n
		}
	}
}

// Reaper periodically deletes attachments that were uploaded but never claimed
// by a post, together with their stored files.
//
// Each attachment is handled in its own transaction that first locks the row
// only if it is still unbound, so a post claiming the attachment concurrently
// either wins (and the row is skipped) or finds the row gone.
type Reaper struct {
	repo  Repository
	files files.Store
	tx    Transactor
	now   func() time.Time

	threshold time.Duration
	batch     int

	// sweepMu serializes sweeps; cursor is the last id listed by a full batch
	sweepMu sync.Mutex
	cursor  int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReaper creates a stopped Reaper
func NewReaper(repo Repository, store files.Store, tx Transactor, opts ...ReaperOption) *Reaper {
	r := &Reaper{
		repo:      repo,
		files:     store,
		tx:        tx,
		now:       time.Now,
		threshold: DefaultAgeThreshold,
		batch:     DefaultSweepBatch,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sweep reclaims up to one batch of unbound attachments older than the age threshold.
// Failures on individual attachments are logged and left for a later sweep;
// only a failure to list candidates is returned.
//
// A full batch moves the cursor past its last id so the next sweep reaches
// newer rows even when older ones keep failing. A short batch wraps the
// cursor back to the start.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	r.sweepMu.Lock()
	defer r.sweepMu.Unlock()

	cutoff := r.now().Add(-r.threshold)

	candidates, err := r.repo.ListUnboundBefore(ctx, cutoff, r.cursor, r.batch)
	if err != nil {
		return 0, fmt.Errorf("failed to list unbound attachments: %w", err)
	}
	if len(candidates) < r.batch {
		r.cursor = 0
	} else {
		r.cursor = candidates[len(candidates)-1].ID
	}

	reclaimed, failed := 0, 0
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return reclaimed, ctx.Err()
		}

		err := r.tx.InTx(ctx, func(ctx context.Context) error {
			return r.reclaim(ctx, candidate.ID)
		})
		switch {
		case err == nil:
			reclaimed++
		case errors.Is(err, errSkip):
			slog.Debug("[REAPER] attachment claimed during sweep, skipping",
				"attachment_id", candidate.ID,
			)
		default:
			failed++
			slog.Warn("[REAPER] failed to reclaim attachment",
				"attachment_id", candidate.ID,
				"file", candidate.Name,
				"error", err,
			)
		}
	}

	if failed > 0 {
		slog.Warn("[REAPER] unbound attachments left for a later sweep",
			"failed", failed,
			"reclaimed", reclaimed,
			"resume_after_id", r.cursor,
		)
	}
	return reclaimed, nil
}

func (r *Reaper) reclaim(ctx context.Context, id int64) error {
	attachment, err := r.repo.LockUnbound(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return errSkip
		}
		return err
	}

	if err := r.files.Delete(ctx, files.FolderAttachments, attachment.Name); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if err := r.repo.Delete(ctx, attachment.ID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Start runs Sweep every interval in a background goroutine until Stop is called.
// Calling Start on a running Reaper, or with a non-positive interval, does nothing.
func (r *Reaper) Start(interval time.Duration) {
	if interval <= 0 {
		slog.Info("[REAPER] attachment reaper disabled (interval=0)")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("[REAPER] CRITICAL: attachment reaper panicked",
					"panic", rec,
				)
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		slog.Info("[REAPER] attachment reaper started",
			"interval", interval,
			"age_threshold", r.threshold,
		)

		for {
			select {
			case <-ctx.Done():
				slog.Info("[REAPER] attachment reaper stopped")
				return
			case <-ticker.C:
				removed, err := r.Sweep(ctx)
				if err != nil {
					if ctx.Err() != nil {
						continue
					}
					slog.Error("[REAPER] sweep failed", "error", err)
					continue
				}
				if removed > 0 {
					slog.Info("[REAPER] reclaimed unbound attachments", "count", removed)
				}
			}
		}
	}()
}

// Stop halts the background loop and waits for an in-flight sweep to return.
// Safe to call on a Reaper that was never started.
func (r *Reaper) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
