package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/news"
)

type NewsRepository struct {
	mu      sync.RWMutex
	items   map[string]news.Item
	pending *MediaDeletionRepository
}

func NewNewsRepository(pending *MediaDeletionRepository, items ...news.Item) *NewsRepository {
	byID := make(map[string]news.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &NewsRepository{items: byID, pending: pending}
}

func (r *NewsRepository) List(_ context.Context) ([]news.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]news.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *NewsRepository) GetByID(_ context.Context, id string) (news.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *NewsRepository) Create(_ context.Context, item news.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.pending.claim(item.ImagePath)
	return nil
}

func (r *NewsRepository) Update(_ context.Context, item news.Item, image media.ImageChange) (news.Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.items[item.ID]
	if !ok {
		return news.Item{}, false, nil
	}
	item.ImagePath = image.Apply(previous.ImagePath)
	r.items[item.ID] = item
	r.pending.obsolete(previous.ImagePath, item.ImagePath)
	r.pending.claim(item.ImagePath)
	return previous, true, nil
}

func (r *NewsRepository) Delete(_ context.Context, id string) (news.Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.items[id]
	if !ok {
		return news.Item{}, false, nil
	}
	delete(r.items, id)
	r.pending.obsolete(previous.ImagePath, "")
	return previous, true, nil
}
