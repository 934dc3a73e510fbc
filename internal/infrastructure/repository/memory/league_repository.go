package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
)

type LeagueRowRepository struct {
	mu    sync.RWMutex
	items map[string]leaguerow.Row
}

func NewLeagueRowRepository(rows ...leaguerow.Row) *LeagueRowRepository {
	items := make(map[string]leaguerow.Row, len(rows))
	for _, row := range rows {
		items[row.ID] = row
	}
	return &LeagueRowRepository{items: items}
}

func (r *LeagueRowRepository) List(_ context.Context) ([]leaguerow.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaguerow.Row, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LeagueRowRepository) GetByID(_ context.Context, id string) (leaguerow.Row, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *LeagueRowRepository) Create(_ context.Context, item leaguerow.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *LeagueRowRepository) Update(_ context.Context, item leaguerow.Row) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return false, nil
	}
	r.items[item.ID] = item
	return true, nil
}

func (r *LeagueRowRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
