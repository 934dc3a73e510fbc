package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

// ImageUpload is an image received from a client, not yet stored.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// MediaStore persists uploaded images and removes them again.
// Remove must treat a missing file as success.
type MediaStore interface {
	Save(ctx context.Context, kind string, upload ImageUpload) (string, error)
	Remove(ctx context.Context, path string) error
}

type MediaSweepResult struct {
	Scanned int
	Reaped  int
	Failed  int
}

const (
	defaultSweepWorkers = 4
	defaultSweepBatch   = 200
)

// MediaReaper removes uploaded files once no record references them.
type MediaReaper struct {
	deletions media.Repository
	store     MediaStore
	logger    *logging.Logger
	grace     time.Duration
	workers   int
	batch     int
	now       func() time.Time
}

func NewMediaReaper(deletions media.Repository, store MediaStore, logger *logging.Logger, grace time.Duration, workers int) *MediaReaper {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultSweepWorkers
	}
	return &MediaReaper{
		deletions: deletions,
		store:     store,
		logger:    logger,
		grace:     grace,
		workers:   workers,
		batch:     defaultSweepBatch,
		now:       time.Now,
	}
}

// track marks a freshly stored upload as pending. The record write that references
// it claims the tombstone in the same transaction; an upload that is never claimed
// is removed by the sweep once the grace period has passed.
func (r *MediaReaper) track(ctx context.Context, path string) error {
	if err := r.deletions.Enqueue(ctx, path); err != nil {
		return fmt.Errorf("track upload %s: %w", path, err)
	}
	return nil
}

// ReapNow removes the files right away and resolves their tombstones.
// Failures are logged and left for the next sweep.
func (r *MediaReaper) ReapNow(ctx context.Context, paths ...string) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaReaper.ReapNow")
	defer span.End()

	reaped := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := r.store.Remove(ctx, path); err != nil {
			r.logger.WarnContext(ctx, "remove media failed, left for sweep", "path", path, "error", err)
			continue
		}
		reaped = append(reaped, path)
	}
	if len(reaped) == 0 {
		return
	}
	if err := r.deletions.Resolve(ctx, reaped...); err != nil {
		r.logger.WarnContext(ctx, "resolve media deletions failed", "paths", reaped, "error", err)
	}
}

// Sweep reaps tombstones older than the grace period.
func (r *MediaReaper) Sweep(ctx context.Context) (MediaSweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaReaper.Sweep")
	defer span.End()

	pending, err := r.deletions.ListPending(ctx, r.now().Add(-r.grace), r.batch)
	if err != nil {
		return MediaSweepResult{}, fmt.Errorf("list pending media deletions: %w", err)
	}
	result := MediaSweepResult{Scanned: len(pending)}
	if len(pending) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return result, fmt.Errorf("create media sweep worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed atomic.Int64
		reaped = make([]string, 0, len(pending))
	)
	for _, item := range pending {
		path := item.Path
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := r.store.Remove(ctx, path); err != nil {
				failed.Add(1)
				r.logger.WarnContext(ctx, "sweep media removal failed", "path", path, "error", err)
				return
			}
			mu.Lock()
			reaped = append(reaped, path)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			r.logger.WarnContext(ctx, "submit media sweep task failed", "path", path, "error", submitErr)
		}
	}
	wg.Wait()

	result.Failed = int(failed.Load())
	if len(reaped) > 0 {
		if err := r.deletions.Resolve(ctx, reaped...); err != nil {
			return result, fmt.Errorf("resolve media deletions: %w", err)
		}
	}
	result.Reaped = len(reaped)

	return result, nil
}

// imageSlot stages a new upload for a record and settles the old one afterwards.
type imageSlot struct {
	kind   string
	store  MediaStore
	reaper *MediaReaper
	logger *logging.Logger
}

func (s imageSlot) stage(ctx context.Context, upload *ImageUpload) (string, error) {
	if upload == nil {
		return "", nil
	}
	path, err := s.store.Save(ctx, s.kind, *upload)
	if err != nil {
		return "", fmt.Errorf("store %s image: %w", s.kind, err)
	}
	if err := s.reaper.track(ctx, path); err != nil {
		if rmErr := s.store.Remove(ctx, path); rmErr != nil {
			s.logger.WarnContext(ctx, "remove untracked upload failed", "kind", s.kind, "path", path, "error", rmErr)
		}
		return "", fmt.Errorf("store %s image: %w", s.kind, err)
	}
	return path, nil
}

// discard removes a staged file whose record was never written. A failed removal
// stays pending for the sweep.
func (s imageSlot) discard(ctx context.Context, path string) {
	s.reaper.ReapNow(ctx, path)
}

// settle reaps the previous image if the record no longer points at it.
func (s imageSlot) settle(ctx context.Context, previous, current string) {
	if previous == "" || previous == current {
		return
	}
	s.reaper.ReapNow(ctx, previous)
}

// imageChange describes what an update does to the stored image. The repository
// applies it to the row it holds, so a concurrent replacement is never undone.
func imageChange(staged string, remove bool) media.ImageChange {
	switch {
	case staged != "":
		return media.ReplaceImage(staged)
	case remove:
		return media.ReplaceImage("")
	default:
		return media.KeepImage()
	}
}
