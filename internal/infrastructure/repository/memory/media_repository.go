package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/media"
)

type MediaDeletionRepository struct {
	mu      sync.Mutex
	pending map[string]time.Time
	now     func() time.Time
}

func NewMediaDeletionRepository() *MediaDeletionRepository {
	return &MediaDeletionRepository{
		pending: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MediaDeletionRepository) Enqueue(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, ok := r.pending[path]; !ok {
			r.pending[path] = now
		}
	}
	return nil
}

func (r *MediaDeletionRepository) ListPending(_ context.Context, requestedBefore time.Time, limit int) ([]media.Deletion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]media.Deletion, 0, len(r.pending))
	for path, at := range r.pending {
		if at.After(requestedBefore) {
			continue
		}
		out = append(out, media.Deletion{Path: path, RequestedAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedAt.Before(out[j].RequestedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MediaDeletionRepository) Resolve(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, path := range paths {
		delete(r.pending, path)
	}
	return nil
}

// obsolete enqueues the previous image when the new record stops referencing it.
func (r *MediaDeletionRepository) obsolete(previous, current string) {
	if r == nil || previous == "" || previous == current {
		return
	}
	_ = r.Enqueue(context.Background(), previous)
}

// claim drops the pending deletion of an upload that a record now references.
func (r *MediaDeletionRepository) claim(path string) {
	if r == nil || path == "" {
		return
	}
	r.mu.Lock()
	delete(r.pending, path)
	r.mu.Unlock()
}
