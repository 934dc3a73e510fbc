package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/news"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

type NewsRepository struct {
	db *sqlx.DB
}

var newsSelectColumns = []string{
	"id",
	"public_id",
	"title",
	"content",
	"image_path",
	"category",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) List(ctx context.Context) ([]news.Item, error) {
	query, args, err := qb.Select(newsSelectColumns...).From("news_items").
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select news query")
	}

	var rows []newsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select news")
	}

	out := make([]news.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, newsFromRow(row))
	}
	return out, nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (news.Item, bool, error) {
	return r.get(ctx, r.db, id, false)
}

func (r *NewsRepository) Create(ctx context.Context, item news.Item) error {
	query, args, err := qb.InsertModel("news_items", newsInsertModel{
		PublicID:  item.ID,
		Title:     item.Title,
		Content:   item.Content,
		ImagePath: item.ImagePath,
		Category:  string(item.Category),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert news query")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx insert news")
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert news")
	}
	if err := claimMedia(ctx, tx, item.ImagePath); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit insert news tx")
	}
	return nil
}

func (r *NewsRepository) Update(ctx context.Context, item news.Item, image media.ImageChange) (news.Item, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return news.Item{}, false, crerr.Wrap(err, "begin tx update news")
	}
	defer rollback(tx)

	previous, exists, err := r.get(ctx, tx, item.ID, true)
	if err != nil || !exists {
		return news.Item{}, false, err
	}
	item.ImagePath = image.Apply(previous.ImagePath)

	query, args, err := qb.Update("news_items").
		Set("title", item.Title).
		Set("content", item.Content).
		Set("image_path", item.ImagePath).
		Set("category", string(item.Category)).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return news.Item{}, false, crerr.Wrap(err, "build update news query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return news.Item{}, false, crerr.Wrap(err, "update news")
	}
	if err := enqueueMediaDeletions(ctx, tx, obsoleteImage(previous.ImagePath, item.ImagePath)); err != nil {
		return news.Item{}, false, err
	}
	if err := claimMedia(ctx, tx, item.ImagePath); err != nil {
		return news.Item{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return news.Item{}, false, crerr.Wrap(err, "commit update news tx")
	}
	return previous, true, nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) (news.Item, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return news.Item{}, false, crerr.Wrap(err, "begin tx delete news")
	}
	defer rollback(tx)

	previous, exists, err := r.get(ctx, tx, id, true)
	if err != nil || !exists {
		return news.Item{}, false, err
	}

	query, args, err := qb.Update("news_items").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return news.Item{}, false, crerr.Wrap(err, "build delete news query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return news.Item{}, false, crerr.Wrap(err, "delete news")
	}
	if err := enqueueMediaDeletions(ctx, tx, previous.ImagePath); err != nil {
		return news.Item{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return news.Item{}, false, crerr.Wrap(err, "commit delete news tx")
	}
	return previous, true, nil
}

func (r *NewsRepository) get(ctx context.Context, q sqlx.QueryerContext, id string, lock bool) (news.Item, bool, error) {
	builder := qb.Select(newsSelectColumns...).From("news_items").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		Limit(1)
	if lock {
		builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return news.Item{}, false, crerr.Wrap(err, "build select news item query")
	}

	var row newsTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return news.Item{}, false, nil
		}
		return news.Item{}, false, crerr.Wrap(err, "select news item")
	}
	return newsFromRow(row), true, nil
}

func newsFromRow(row newsTableModel) news.Item {
	return news.Item{
		ID:        row.PublicID,
		Title:     row.Title,
		Content:   row.Content,
		ImagePath: row.ImagePath,
		Category:  news.Category(row.Category),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
