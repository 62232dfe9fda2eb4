package upload

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"go.uber.org/zap"
)

// Status is the lifecycle stage of a tracked upload.
type Status string

const (
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// Progress is a snapshot of one upload.
type Progress struct {
	ID      string
	Owner   string
	Percent int
	Status  Status
	// Err is the failure of a failed upload.
	Err       error
	UpdatedAt time.Time
}

// Finished reports whether the upload reached a terminal status.
func (p Progress) Finished() bool {
	return p.Status == StatusDone || p.Status == StatusFailed
}

// Tracker runs uploads in the background and records their progress for
// polling. Finished entries are kept for retention and then pruned.
type Tracker struct {
	mu        sync.Mutex
	items     map[string]*Progress
	wg        sync.WaitGroup
	now       func() time.Time
	retention time.Duration
	logger    *zap.Logger
}

// NewTracker builds a Tracker. A nil logger logs nothing.
func NewTracker(logger *zap.Logger, retention time.Duration) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retention <= 0 {
		retention = 10 * time.Minute
	}
	return &Tracker{
		items:     map[string]*Progress{},
		now:       time.Now,
		retention: retention,
		logger:    logger,
	}
}

// Go starts fn on a goroutine detached from ctx's cancellation and bounded by
// timeout, and returns the upload id. Success of fn marks the upload done;
// reaching 100 percent alone does not.
func (t *Tracker) Go(ctx context.Context, owner string, timeout time.Duration, fn func(ctx context.Context, report content.ProgressFunc) error) string {
	id := uuid.NewString()
	t.mu.Lock()
	t.pruneLocked()
	t.items[id] = &Progress{ID: id, Owner: owner, Status: StatusUploading, UpdatedAt: t.now()}
	t.mu.Unlock()

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer cancel()
		err := fn(runCtx, func(percent int) {
			t.report(id, percent)
		})
		t.finish(id, err)
	}()
	return id
}

func (t *Tracker) report(id string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item, ok := t.items[id]
	if !ok || item.Finished() {
		return
	}
	if percent > item.Percent {
		item.Percent = min(percent, 100)
	}
	item.UpdatedAt = t.now()
}

func (t *Tracker) finish(id string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item, ok := t.items[id]
	if !ok {
		return
	}
	item.UpdatedAt = t.now()
	if err != nil {
		item.Status = StatusFailed
		item.Err = err
		t.logger.Warn("image upload failed", zap.String("upload_id", id), zap.String("owner", item.Owner), zap.Error(err))
		return
	}
	item.Status = StatusDone
	item.Percent = 100
	t.logger.Info("image upload finished", zap.String("upload_id", id), zap.String("owner", item.Owner))
}

// Get returns the progress of id when it belongs to owner.
func (t *Tracker) Get(id, owner string) (Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item, ok := t.items[id]
	if !ok || item.Owner != owner {
		return Progress{}, false
	}
	return *item, true
}

// Wait blocks until every started upload has finished.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func (t *Tracker) pruneLocked() {
	cutoff := t.now().Add(-t.retention)
	for id, item := range t.items {
		if item.Finished() && item.UpdatedAt.Before(cutoff) {
			delete(t.items, id)
		}
	}
}
