package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volley-club/internal/domain/media"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

type mediaDeletionTableModel struct {
	Path        string    `db:"path"`
	RequestedAt time.Time `db:"requested_at"`
}

type MediaDeletionRepository struct {
	db *sqlx.DB
}

func NewMediaDeletionRepository(db *sqlx.DB) *MediaDeletionRepository {
	return &MediaDeletionRepository{db: db}
}

func (r *MediaDeletionRepository) Enqueue(ctx context.Context, paths ...string) error {
	return enqueueMediaDeletions(ctx, r.db, paths...)
}

func (r *MediaDeletionRepository) ListPending(ctx context.Context, requestedBefore time.Time, limit int) ([]media.Deletion, error) {
	query, args, err := qb.Select("path", "requested_at").From("media_deletions").
		Where(qb.Expr("requested_at <= ?", requestedBefore)).
		OrderBy("requested_at").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select media deletions query")
	}

	var rows []mediaDeletionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select media deletions")
	}

	out := make([]media.Deletion, 0, len(rows))
	for _, row := range rows {
		out = append(out, media.Deletion{Path: row.Path, RequestedAt: row.RequestedAt})
	}
	return out, nil
}

func (r *MediaDeletionRepository) Resolve(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	query, args, err := qb.DeleteFrom("media_deletions").
		Where(qb.In("path", stringSliceToAny(paths))).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build resolve media deletions query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "resolve media deletions")
	}
	return nil
}
