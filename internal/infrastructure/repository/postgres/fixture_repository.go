package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

var fixtureSelectColumns = []string{
	"id",
	"public_id",
	"opponent",
	"match_date",
	"venue",
	"status",
	"home_score",
	"away_score",
	"competition",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(qb.IsNull("deleted_at")).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select fixtures query")
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select fixtures")
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, crerr.Wrap(err, "build select fixture query")
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, crerr.Wrap(err, "select fixture")
	}
	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) error {
	query, args, err := qb.InsertModel("fixtures", fixtureInsertModel{
		PublicID:    item.ID,
		Opponent:    item.Opponent,
		MatchDate:   item.Date,
		Venue:       string(item.Venue),
		Status:      string(item.Status),
		HomeScore:   item.Score.Home,
		AwayScore:   item.Score.Away,
		Competition: item.Competition,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert fixture query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "insert fixture")
	}
	return nil
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) (bool, error) {
	query, args, err := qb.Update("fixtures").
		Set("opponent", item.Opponent).
		Set("match_date", item.Date).
		Set("venue", string(item.Venue)).
		Set("status", string(item.Status)).
		Set("home_score", item.Score.Home).
		Set("away_score", item.Score.Away).
		Set("competition", item.Competition).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build update fixture query")
	}
	return execAffected(ctx, r.db, "update fixture", query, args)
}

func (r *FixtureRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update("fixtures").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build delete fixture query")
	}
	return execAffected(ctx, r.db, "delete fixture", query, args)
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:          row.PublicID,
		Opponent:    row.Opponent,
		Date:        row.MatchDate.UTC(),
		Venue:       fixture.Venue(row.Venue),
		Status:      fixture.Status(row.Status),
		Score:       fixture.Score{Home: row.HomeScore, Away: row.AwayScore},
		Competition: row.Competition,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
