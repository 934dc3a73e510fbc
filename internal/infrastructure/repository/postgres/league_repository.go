package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

type LeagueRowRepository struct {
	db *sqlx.DB
}

var leagueRowSelectColumns = []string{
	"id",
	"public_id",
	"team_name",
	"played",
	"wins",
	"losses",
	"points",
	"table_position",
	"updated_at",
	"deleted_at",
}

func NewLeagueRowRepository(db *sqlx.DB) *LeagueRowRepository {
	return &LeagueRowRepository{db: db}
}

func (r *LeagueRowRepository) List(ctx context.Context) ([]leaguerow.Row, error) {
	query, args, err := qb.Select(leagueRowSelectColumns...).From("league_rows").
		Where(qb.IsNull("deleted_at")).
		OrderBy("table_position", "points DESC", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select league rows query")
	}

	var rows []leagueRowTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select league rows")
	}

	out := make([]leaguerow.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueRowFromRow(row))
	}
	return out, nil
}

func (r *LeagueRowRepository) GetByID(ctx context.Context, id string) (leaguerow.Row, bool, error) {
	query, args, err := qb.Select(leagueRowSelectColumns...).From("league_rows").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return leaguerow.Row{}, false, crerr.Wrap(err, "build select league row query")
	}

	var row leagueRowTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leaguerow.Row{}, false, nil
		}
		return leaguerow.Row{}, false, crerr.Wrap(err, "select league row")
	}
	return leagueRowFromRow(row), true, nil
}

func (r *LeagueRowRepository) Create(ctx context.Context, item leaguerow.Row) error {
	query, args, err := qb.InsertModel("league_rows", leagueRowInsertModel{
		PublicID:      item.ID,
		TeamName:      item.TeamName,
		Played:        item.Played,
		Wins:          item.Wins,
		Losses:        item.Losses,
		Points:        item.Points,
		TablePosition: item.Position,
		UpdatedAt:     item.UpdatedAt,
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert league row query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert league row")
	}
	return nil
}

func (r *LeagueRowRepository) Update(ctx context.Context, item leaguerow.Row) (bool, error) {
	query, args, err := qb.Update("league_rows").
		Set("team_name", item.TeamName).
		Set("played", item.Played).
		Set("wins", item.Wins).
		Set("losses", item.Losses).
		Set("points", item.Points).
		Set("table_position", item.Position).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build update league row query")
	}
	return execAffected(ctx, r.db, "update league row", query, args)
}

func (r *LeagueRowRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update("league_rows").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build delete league row query")
	}
	return execAffected(ctx, r.db, "delete league row", query, args)
}

func leagueRowFromRow(row leagueRowTableModel) leaguerow.Row {
	return leaguerow.Row{
		ID:        row.PublicID,
		TeamName:  row.TeamName,
		Played:    row.Played,
		Wins:      row.Wins,
		Losses:    row.Losses,
		Points:    row.Points,
		Position:  row.TablePosition,
		UpdatedAt: row.UpdatedAt,
	}
}
