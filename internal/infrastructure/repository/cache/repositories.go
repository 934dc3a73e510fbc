package cache

import (
	"context"

	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/news"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	basecache "github.com/riskibarqy/volley-club/internal/platform/cache"
)

const (
	playerPrefix  = "player:"
	fixturePrefix = "fixture:"
	newsPrefix    = "news:"
	storePrefix   = "store:"
	leaguePrefix  = "league:"
)

// loadList caches a list read under key and hands out copies.
func loadList[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}

type cachedByID[T any] struct {
	value  T
	exists bool
}

func loadByID[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedByID[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	cached, _ := v.(cachedByID[T])
	return cached.value, cached.exists, nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := loadList(ctx, r.cache, playerPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Positions = append([]player.Position(nil), items[i].Positions...)
	}
	return items, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerPrefix)
	return r.next.Create(ctx, item)
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player, image media.ImageChange) (player.Player, bool, error) {
	defer r.cache.DeletePrefix(ctx, playerPrefix)
	return r.next.Update(ctx, item, image)
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) (player.Player, bool, error) {
	defer r.cache.DeletePrefix(ctx, playerPrefix)
	return r.next.Delete(ctx, id)
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	return loadList(ctx, r.cache, fixturePrefix+"list", r.next.List)
}

func (r *FixtureRepository) GetByID(ctx context.Context, id string) (fixture.Fixture, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) error {
	defer r.cache.DeletePrefix(ctx, fixturePrefix)
	return r.next.Create(ctx, item)
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) (bool, error) {
	defer r.cache.DeletePrefix(ctx, fixturePrefix)
	return r.next.Update(ctx, item)
}

func (r *FixtureRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.cache.DeletePrefix(ctx, fixturePrefix)
	return r.next.Delete(ctx, id)
}

type NewsRepository struct {
	next  news.Repository
	cache *basecache.Store
}

func NewNewsRepository(next news.Repository, cache *basecache.Store) *NewsRepository {
	return &NewsRepository{next: next, cache: cache}
}

func (r *NewsRepository) List(ctx context.Context) ([]news.Item, error) {
	return loadList(ctx, r.cache, newsPrefix+"list", r.next.List)
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (news.Item, bool, error) {
	return loadByID(ctx, r.cache, newsPrefix+"id:"+id, func(ctx context.Context) (news.Item, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *NewsRepository) Create(ctx context.Context, item news.Item) error {
	defer r.cache.DeletePrefix(ctx, newsPrefix)
	return r.next.Create(ctx, item)
}

func (r *NewsRepository) Update(ctx context.Context, item news.Item, image media.ImageChange) (news.Item, bool, error) {
	defer r.cache.DeletePrefix(ctx, newsPrefix)
	return r.next.Update(ctx, item, image)
}

func (r *NewsRepository) Delete(ctx context.Context, id string) (news.Item, bool, error) {
	defer r.cache.DeletePrefix(ctx, newsPrefix)
	return r.next.Delete(ctx, id)
}

type StoreItemRepository struct {
	next  storeitem.Repository
	cache *basecache.Store
}

func NewStoreItemRepository(next storeitem.Repository, cache *basecache.Store) *StoreItemRepository {
	return &StoreItemRepository{next: next, cache: cache}
}

func (r *StoreItemRepository) List(ctx context.Context) ([]storeitem.Item, error) {
	items, err := loadList(ctx, r.cache, storePrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Sizes = append([]storeitem.Size(nil), items[i].Sizes...)
	}
	return items, nil
}

func (r *StoreItemRepository) GetByID(ctx context.Context, id string) (storeitem.Item, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *StoreItemRepository) Create(ctx context.Context, item storeitem.Item) error {
	defer r.cache.DeletePrefix(ctx, storePrefix)
	return r.next.Create(ctx, item)
}

func (r *StoreItemRepository) Update(ctx context.Context, item storeitem.Item, image media.ImageChange) (storeitem.Item, bool, error) {
	defer r.cache.DeletePrefix(ctx, storePrefix)
	return r.next.Update(ctx, item, image)
}

func (r *StoreItemRepository) Delete(ctx context.Context, id string) (storeitem.Item, bool, error) {
	defer r.cache.DeletePrefix(ctx, storePrefix)
	return r.next.Delete(ctx, id)
}

type LeagueRowRepository struct {
	next  leaguerow.Repository
	cache *basecache.Store
}

func NewLeagueRowRepository(next leaguerow.Repository, cache *basecache.Store) *LeagueRowRepository {
	return &LeagueRowRepository{next: next, cache: cache}
}

func (r *LeagueRowRepository) List(ctx context.Context) ([]leaguerow.Row, error) {
	return loadList(ctx, r.cache, leaguePrefix+"list", r.next.List)
}

func (r *LeagueRowRepository) GetByID(ctx context.Context, id string) (leaguerow.Row, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *LeagueRowRepository) Create(ctx context.Context, item leaguerow.Row) error {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.next.Create(ctx, item)
}

func (r *LeagueRowRepository) Update(ctx context.Context, item leaguerow.Row) (bool, error) {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.next.Update(ctx, item)
}

func (r *LeagueRowRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.next.Delete(ctx, id)
}
