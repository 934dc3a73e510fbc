package app

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/volley-club/internal/config"
	"github.com/riskibarqy/volley-club/internal/domain/account"
	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/news"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	"github.com/riskibarqy/volley-club/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/volley-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/volley-club/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/volley-club/internal/platform/cache"
	"github.com/riskibarqy/volley-club/internal/platform/database"
	"github.com/riskibarqy/volley-club/internal/platform/health"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

type repositories struct {
	accounts  account.Repository
	players   player.Repository
	fixtures  fixture.Repository
	news      news.Repository
	store     storeitem.Repository
	league    leaguerow.Repository
	deletions media.Repository
}

func newMemoryRepositories(now time.Time) repositories {
	pending := memory.NewMediaDeletionRepository()
	return repositories{
		accounts:  memory.NewAccountRepository(),
		players:   memory.NewPlayerRepository(pending),
		fixtures:  memory.NewFixtureRepository(memory.SeedFixtures(now)...),
		news:      memory.NewNewsRepository(pending),
		store:     memory.NewStoreItemRepository(pending),
		league:    memory.NewLeagueRowRepository(memory.SeedLeagueRows(now)...),
		deletions: pending,
	}
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		accounts:  postgres.NewAccountRepository(db),
		players:   postgres.NewPlayerRepository(db),
		fixtures:  postgres.NewFixtureRepository(db),
		news:      postgres.NewNewsRepository(db),
		store:     postgres.NewStoreItemRepository(db),
		league:    postgres.NewLeagueRowRepository(db),
		deletions: postgres.NewMediaDeletionRepository(db),
	}
}

// withCache wraps the publicly listed collections in read-through caches.
// Accounts and media tombstones always hit storage.
func (r repositories) withCache(ttl time.Duration) repositories {
	store := basecache.NewStore(ttl)
	r.players = cache.NewPlayerRepository(r.players, store)
	r.fixtures = cache.NewFixtureRepository(r.fixtures, store)
	r.news = cache.NewNewsRepository(r.news, store)
	r.store = cache.NewStoreItemRepository(r.store, store)
	r.league = cache.NewLeagueRowRepository(r.league, store)
	return r
}

func openStorage(ctx context.Context, cfg config.Config, state *health.DBState, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.InfoContext(ctx, "using in-memory storage")
		state.MarkConnected()
		return newMemoryRepositories(time.Now()), nil, nil
	}

	db, err := database.Open(ctx, database.Options{
		URL:                   cfg.DBURL,
		DisablePreparedBinary: cfg.DBDisablePreparedBinary,
		MaxOpenConns:          cfg.DBMaxOpenConns,
		RetryDelay:            cfg.DBRetryDelay,
	}, state, logger)
	if err != nil {
		return repositories{}, nil, err
	}
	return newPostgresRepositories(db), db, nil
}
