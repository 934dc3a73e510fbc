package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

// enqueueMediaDeletions records tombstones for files that the current write stops referencing.
func enqueueMediaDeletions(ctx context.Context, exec sqlx.ExecerContext, paths ...string) error {
	builder := qb.InsertInto("media_deletions").Columns("path")
	count := 0
	for _, path := range paths {
		if path == "" {
			continue
		}
		builder.Values(path)
		count++
	}
	if count == 0 {
		return nil
	}

	query, args, err := builder.Suffix("ON CONFLICT (path) DO NOTHING").ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build enqueue media deletion query")
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "enqueue media deletion")
	}
	return nil
}

// claimMedia drops the pending deletion of an upload that the current write references.
func claimMedia(ctx context.Context, exec sqlx.ExecerContext, path string) error {
	if path == "" {
		return nil
	}
	query, args, err := qb.DeleteFrom("media_deletions").
		Where(qb.Eq("path", path)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build claim media query")
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "claim media")
	}
	return nil
}

// obsoleteImage returns the previous image path when the new record no longer uses it.
func obsoleteImage(previous, current string) string {
	if previous == current {
		return ""
	}
	return previous
}

func rollback(tx *sqlx.Tx) {
	_ = tx.Rollback()
}

func execAffected(ctx context.Context, exec sqlx.ExecerContext, op, query string, args []any) (bool, error) {
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return false, crerr.Wrap(err, op)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, crerr.Wrapf(err, "%s rows affected", op)
	}
	return affected > 0, nil
}
