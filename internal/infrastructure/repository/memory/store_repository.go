package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
)

type StoreItemRepository struct {
	mu      sync.RWMutex
	items   map[string]storeitem.Item
	pending *MediaDeletionRepository
}

func NewStoreItemRepository(pending *MediaDeletionRepository, items ...storeitem.Item) *StoreItemRepository {
	byID := make(map[string]storeitem.Item, len(items))
	for _, item := range items {
		byID[item.ID] = cloneStoreItem(item)
	}
	return &StoreItemRepository{items: byID, pending: pending}
}

func (r *StoreItemRepository) List(_ context.Context) ([]storeitem.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]storeitem.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneStoreItem(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *StoreItemRepository) GetByID(_ context.Context, id string) (storeitem.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return storeitem.Item{}, false, nil
	}
	return cloneStoreItem(item), true, nil
}

func (r *StoreItemRepository) Create(_ context.Context, item storeitem.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneStoreItem(item)
	r.pending.claim(item.ImagePath)
	return nil
}

func (r *StoreItemRepository) Update(_ context.Context, item storeitem.Item, image media.ImageChange) (storeitem.Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.items[item.ID]
	if !ok {
		return storeitem.Item{}, false, nil
	}
	item.ImagePath = image.Apply(previous.ImagePath)
	r.items[item.ID] = cloneStoreItem(item)
	r.pending.obsolete(previous.ImagePath, item.ImagePath)
	r.pending.claim(item.ImagePath)
	return previous, true, nil
}

func (r *StoreItemRepository) Delete(_ context.Context, id string) (storeitem.Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.items[id]
	if !ok {
		return storeitem.Item{}, false, nil
	}
	delete(r.items, id)
	r.pending.obsolete(previous.ImagePath, "")
	return previous, true, nil
}

func cloneStoreItem(item storeitem.Item) storeitem.Item {
	item.Sizes = append([]storeitem.Size(nil), item.Sizes...)
	return item
}
