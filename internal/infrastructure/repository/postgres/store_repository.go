package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

type StoreItemRepository struct {
	db *sqlx.DB
}

// price is NUMERIC(10,2); the ::float8 cast keeps scanning into float64 straightforward.
var storeItemSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"price::float8 AS price",
	"stock",
	"status",
	"description",
	"image_path",
	"category",
	"sizes",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewStoreItemRepository(db *sqlx.DB) *StoreItemRepository {
	return &StoreItemRepository{db: db}
}

func (r *StoreItemRepository) List(ctx context.Context) ([]storeitem.Item, error) {
	query, args, err := qb.Select(storeItemSelectColumns...).From("store_items").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select store items query")
	}

	var rows []storeItemTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select store items")
	}

	out := make([]storeitem.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, storeItemFromRow(row))
	}
	return out, nil
}

func (r *StoreItemRepository) GetByID(ctx context.Context, id string) (storeitem.Item, bool, error) {
	return r.get(ctx, r.db, id, false)
}

func (r *StoreItemRepository) Create(ctx context.Context, item storeitem.Item) error {
	query, args, err := qb.InsertModel("store_items", storeItemInsertModel{
		PublicID:    item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Stock:       item.Stock,
		Status:      string(item.Status),
		Description: item.Description,
		ImagePath:   item.ImagePath,
		Category:    string(item.Category),
		Sizes:       sizesToArray(item.Sizes),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert store item query")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx insert store item")
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert store item")
	}
	if err := claimMedia(ctx, tx, item.ImagePath); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit insert store item tx")
	}
	return nil
}

func (r *StoreItemRepository) Update(ctx context.Context, item storeitem.Item, image media.ImageChange) (storeitem.Item, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "begin tx update store item")
	}
	defer rollback(tx)

	previous, exists, err := r.get(ctx, tx, item.ID, true)
	if err != nil || !exists {
		return storeitem.Item{}, false, err
	}
	item.ImagePath = image.Apply(previous.ImagePath)

	query, args, err := qb.Update("store_items").
		Set("name", item.Name).
		Set("price", item.Price).
		Set("stock", item.Stock).
		Set("status", string(item.Status)).
		Set("description", item.Description).
		Set("image_path", item.ImagePath).
		Set("category", string(item.Category)).
		Set("sizes", sizesToArray(item.Sizes)).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "build update store item query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "update store item")
	}
	if err := enqueueMediaDeletions(ctx, tx, obsoleteImage(previous.ImagePath, item.ImagePath)); err != nil {
		return storeitem.Item{}, false, err
	}
	if err := claimMedia(ctx, tx, item.ImagePath); err != nil {
		return storeitem.Item{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "commit update store item tx")
	}
	return previous, true, nil
}

func (r *StoreItemRepository) Delete(ctx context.Context, id string) (storeitem.Item, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "begin tx delete store item")
	}
	defer rollback(tx)

	previous, exists, err := r.get(ctx, tx, id, true)
	if err != nil || !exists {
		return storeitem.Item{}, false, err
	}

	query, args, err := qb.Update("store_items").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "build delete store item query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "delete store item")
	}
	if err := enqueueMediaDeletions(ctx, tx, previous.ImagePath); err != nil {
		return storeitem.Item{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "commit delete store item tx")
	}
	return previous, true, nil
}

func (r *StoreItemRepository) get(ctx context.Context, q sqlx.QueryerContext, id string, lock bool) (storeitem.Item, bool, error) {
	builder := qb.Select(storeItemSelectColumns...).From("store_items").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		Limit(1)
	if lock {
		builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return storeitem.Item{}, false, crerr.Wrap(err, "build select store item query")
	}

	var row storeItemTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return storeitem.Item{}, false, nil
		}
		return storeitem.Item{}, false, crerr.Wrap(err, "select store item")
	}
	return storeItemFromRow(row), true, nil
}

func sizesToArray(items []storeitem.Size) pq.StringArray {
	out := make(pq.StringArray, 0, len(items))
	for _, item := range items {
		out = append(out, string(item))
	}
	return out
}

func storeItemFromRow(row storeItemTableModel) storeitem.Item {
	sizes := make([]storeitem.Size, 0, len(row.Sizes))
	for _, size := range row.Sizes {
		sizes = append(sizes, storeitem.Size(size))
	}
	return storeitem.Item{
		ID:          row.PublicID,
		Name:        row.Name,
		Price:       row.Price,
		Stock:       row.Stock,
		Status:      storeitem.Status(row.Status),
		Description: row.Description,
		ImagePath:   row.ImagePath,
		Category:    storeitem.Category(row.Category),
		Sizes:       sizes,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
