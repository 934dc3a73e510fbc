package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"positions",
	"jersey_number",
	"age",
	"nationality",
	"image_path",
	"kills",
	"aces",
	"digs",
	"blocks",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("jersey_number", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select players query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	return r.get(ctx, r.db, id, false)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		PublicID:     item.ID,
		Name:         item.Name,
		Positions:    positionsToArray(item.Positions),
		JerseyNumber: item.JerseyNumber,
		Age:          item.Age,
		Nationality:  item.Nationality,
		ImagePath:    item.ImagePath,
		Kills:        item.Stats.Kills,
		Aces:         item.Stats.Aces,
		Digs:         item.Stats.Digs,
		Blocks:       item.Stats.Blocks,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert player query")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx insert player")
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert player")
	}
	if err := claimMedia(ctx, tx, item.ImagePath); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit insert player tx")
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player, image media.ImageChange) (player.Player, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "begin tx update player")
	}
	defer rollback(tx)

	previous, exists, err := r.get(ctx, tx, item.ID, true)
	if err != nil || !exists {
		return player.Player{}, false, err
	}
	item.ImagePath = image.Apply(previous.ImagePath)

	query, args, err := qb.Update("players").
		Set("name", item.Name).
		Set("positions", positionsToArray(item.Positions)).
		Set("jersey_number", item.JerseyNumber).
		Set("age", item.Age).
		Set("nationality", item.Nationality).
		Set("image_path", item.ImagePath).
		Set("kills", item.Stats.Kills).
		Set("aces", item.Stats.Aces).
		Set("digs", item.Stats.Digs).
		Set("blocks", item.Stats.Blocks).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build update player query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return player.Player{}, false, crerr.Wrap(err, "update player")
	}
	if err := enqueueMediaDeletions(ctx, tx, obsoleteImage(previous.ImagePath, item.ImagePath)); err != nil {
		return player.Player{}, false, err
	}
	if err := claimMedia(ctx, tx, item.ImagePath); err != nil {
		return player.Player{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return player.Player{}, false, crerr.Wrap(err, "commit update player tx")
	}
	return previous, true, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) (player.Player, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "begin tx delete player")
	}
	defer rollback(tx)

	previous, exists, err := r.get(ctx, tx, id, true)
	if err != nil || !exists {
		return player.Player{}, false, err
	}

	query, args, err := qb.Update("players").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build delete player query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return player.Player{}, false, crerr.Wrap(err, "delete player")
	}
	if err := enqueueMediaDeletions(ctx, tx, previous.ImagePath); err != nil {
		return player.Player{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return player.Player{}, false, crerr.Wrap(err, "commit delete player tx")
	}
	return previous, true, nil
}

func (r *PlayerRepository) get(ctx context.Context, q sqlx.QueryerContext, id string, lock bool) (player.Player, bool, error) {
	builder := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		Limit(1)
	if lock {
		builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build select player query")
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrap(err, "select player")
	}
	return playerFromRow(row), true, nil
}

func positionsToArray(items []player.Position) pq.StringArray {
	out := make(pq.StringArray, 0, len(items))
	for _, item := range items {
		out = append(out, string(item))
	}
	return out
}

func playerFromRow(row playerTableModel) player.Player {
	positions := make([]player.Position, 0, len(row.Positions))
	for _, pos := range row.Positions {
		positions = append(positions, player.Position(pos))
	}
	return player.Player{
		ID:           row.PublicID,
		Name:         row.Name,
		Positions:    positions,
		JerseyNumber: row.JerseyNumber,
		Age:          row.Age,
		Nationality:  row.Nationality,
		ImagePath:    row.ImagePath,
		Stats: player.Stats{
			Kills:  row.Kills,
			Aces:   row.Aces,
			Digs:   row.Digs,
			Blocks: row.Blocks,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
