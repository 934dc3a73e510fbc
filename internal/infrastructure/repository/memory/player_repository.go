package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	items   map[string]player.Player
	pending *MediaDeletionRepository
}

func NewPlayerRepository(pending *MediaDeletionRepository, players ...player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = clonePlayer(p)
	}
	return &PlayerRepository{items: items, pending: pending}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, clonePlayer(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JerseyNumber != out[j].JerseyNumber {
			return out[i].JerseyNumber < out[j].JerseyNumber
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(item), true, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = clonePlayer(item)
	r.pending.claim(item.ImagePath)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player, image media.ImageChange) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.items[item.ID]
	if !ok {
		return player.Player{}, false, nil
	}
	item.ImagePath = image.Apply(previous.ImagePath)
	r.items[item.ID] = clonePlayer(item)
	r.pending.obsolete(previous.ImagePath, item.ImagePath)
	r.pending.claim(item.ImagePath)
	return previous, true, nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.items[id]
	if !ok {
		return player.Player{}, false, nil
	}
	delete(r.items, id)
	r.pending.obsolete(previous.ImagePath, "")
	return previous, true, nil
}

func clonePlayer(p player.Player) player.Player {
	p.Positions = append([]player.Position(nil), p.Positions...)
	return p
}
