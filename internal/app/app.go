package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/volley-club/internal/config"
	"github.com/riskibarqy/volley-club/internal/infrastructure/account/password"
	"github.com/riskibarqy/volley-club/internal/infrastructure/account/token"
	"github.com/riskibarqy/volley-club/internal/infrastructure/mediastore"
	"github.com/riskibarqy/volley-club/internal/interfaces/httpapi"
	"github.com/riskibarqy/volley-club/internal/platform/health"
	idgen "github.com/riskibarqy/volley-club/internal/platform/id"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
	"github.com/riskibarqy/volley-club/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server and the background runners that keep it healthy.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	server  *http.Server
	db      *sqlx.DB
	dbState *health.DBState
	reaper  *usecase.MediaReaper
}

// New builds the dependency graph. With postgres storage it blocks until the
// database answers or ctx is cancelled.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	dbState := health.NewDBState()
	repos, db, err := openStorage(ctx, cfg, dbState, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if cfg.CacheEnabled {
		repos = repos.withCache(cfg.CacheTTL)
	}

	ids := idgen.NewRandomGenerator()
	mediaStore := mediastore.NewLocalStore(cfg.UploadsDir, cfg.UploadMaxBytes)
	reaper := usecase.NewMediaReaper(repos.deletions, mediaStore, logger, cfg.MediaSweepGrace, cfg.MediaSweepWorkers)
	tokens := token.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authSvc := usecase.NewAuthService(repos.accounts, password.NewBcrypt(cfg.BcryptCost), tokens, ids)
	if err := bootstrapAdmin(ctx, cfg, authSvc, logger); err != nil {
		closeDB(db, logger)
		return nil, err
	}

	handler := httpapi.NewHandler(
		authSvc,
		usecase.NewPlayerService(repos.players, mediaStore, reaper, ids, logger),
		usecase.NewFixtureService(repos.fixtures, ids),
		usecase.NewNewsService(repos.news, mediaStore, reaper, ids, logger),
		usecase.NewStoreService(repos.store, mediaStore, reaper, ids, logger),
		usecase.NewLeagueService(repos.league, ids),
		usecase.NewAdminService(repos.accounts, repos.players, repos.fixtures, repos.news, repos.store, repos.league),
		dbState,
		logger,
		cfg.UploadMaxBytes,
	)
	router := httpapi.NewRouter(handler, tokens, authSvc, logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		UploadsDir:         cfg.UploadsDir,
		ExposeErrorDetail:  cfg.ExposeErrorDetail(),
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		db:      db,
		dbState: dbState,
		reaper:  reaper,
	}, nil
}

func bootstrapAdmin(ctx context.Context, cfg config.Config, auth *usecase.AuthService, logger *logging.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	admin, created, err := auth.EnsureAdmin(ctx, usecase.EnsureAdminInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}
	if created {
		logger.InfoContext(ctx, "admin account created", "user_id", admin.ID, "email", admin.Email)
	}
	return nil
}

// Handler exposes the router, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
// Background runners stop with the server.
func (a *App) Run(ctx context.Context) error {
	defer closeDB(a.db, a.logger)

	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		a.logger.InfoContext(ctx, "http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		a.logger.InfoContext(shutdownCtx, "http server stopped")
		return nil
	})

	if a.db != nil {
		p.Go(func(ctx context.Context) error {
			a.dbState.Monitor(ctx, a.db, a.cfg.DBPingInterval, a.logger)
			return nil
		})
	}

	if a.cfg.MediaSweepInterval > 0 {
		p.Go(func(ctx context.Context) error {
			a.sweepMedia(ctx)
			return nil
		})
	}

	return p.Wait()
}

func (a *App) sweepMedia(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.MediaSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := a.reaper.Sweep(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				a.logger.WarnContext(ctx, "media sweep failed", "error", err)
				continue
			}
			if result.Scanned > 0 {
				a.logger.InfoContext(ctx, "media sweep finished",
					"scanned", result.Scanned,
					"reaped", result.Reaped,
					"failed", result.Failed,
				)
			}
		}
	}
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database failed", "error", err)
	}
}
