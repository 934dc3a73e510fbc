package database

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/volley-club/internal/platform/health"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

const (
	driverName         = "postgres"
	defaultRetryDelay  = 5 * time.Second
	defaultPingTimeout = 5 * time.Second
)

// Options controls how the connection pool is opened.
type Options struct {
	URL                   string
	DisablePreparedBinary bool
	MaxOpenConns          int
	RetryDelay            time.Duration
}

type connector func(ctx context.Context) (*sqlx.DB, error)

// Open connects to PostgreSQL, retrying with a constant delay until the
// database answers a ping or ctx is cancelled. Every attempt is recorded in
// state so readiness reflects startup progress.
func Open(ctx context.Context, opts Options, state *health.DBState, logger *logging.Logger) (*sqlx.DB, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New("database url cannot be empty")
	}
	dsn := NormalizeURL(opts.URL, opts.DisablePreparedBinary)

	connect := func(ctx context.Context) (*sqlx.DB, error) {
		db, err := otelsqlx.Open(driverName, dsn,
			otelsql.WithDBName(NameFromURL(dsn)),
			otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
			otelsql.WithQueryFormatter(FormatQueryForTrace),
		)
		if err != nil {
			return nil, backoff.Permanent(errors.Wrap(err, "open database"))
		}
		if opts.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opts.MaxOpenConns)
			db.SetMaxIdleConns(opts.MaxOpenConns)
		}

		pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "ping database")
		}
		return db, nil
	}

	return openWithRetry(ctx, connect, opts.RetryDelay, state, logger)
}

func openWithRetry(ctx context.Context, connect connector, delay time.Duration, state *health.DBState, logger *logging.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	attempt := 0
	db, err := backoff.Retry(ctx,
		func() (*sqlx.DB, error) {
			attempt++
			db, err := connect(ctx)
			if state != nil {
				state.Record(err)
			}
			return db, err
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(delay)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.WarnContext(ctx, "database not reachable, retrying",
				"attempt", attempt,
				"retry_in", next.String(),
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	logger.InfoContext(ctx, "database connected", "attempts", attempt)
	return db, nil
}
