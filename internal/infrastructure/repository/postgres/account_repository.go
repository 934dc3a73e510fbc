package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volley-club/internal/domain/account"
	qb "github.com/riskibarqy/volley-club/internal/platform/querybuilder"
)

type AccountRepository struct {
	db *sqlx.DB
}

var accountSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"email",
	"password_hash",
	"role",
	"created_at",
	"updated_at",
	"last_login_at",
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, item account.Account) error {
	query, args, err := qb.InsertModel("accounts", accountInsertModel{
		PublicID:     item.ID,
		Name:         item.Name,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		Role:         string(item.Role),
		CreatedAt:    item.CreatedAt,
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert account query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return account.ErrEmailTaken
		}
		return crerr.Wrap(err, "insert account")
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (account.Account, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", id))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, bool, error) {
	return r.getOne(ctx, qb.Eq("email", account.NormalizeEmail(email)))
}

func (r *AccountRepository) List(ctx context.Context) ([]account.Account, error) {
	query, args, err := qb.Select(accountSelectColumns...).From("accounts").
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select accounts query")
	}

	var rows []accountTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select accounts")
	}

	out := make([]account.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, accountFromRow(row))
	}
	return out, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, item account.Account) error {
	query, args, err := qb.Update("accounts").
		Set("name", item.Name).
		Set("email", item.Email).
		Set("password_hash", item.PasswordHash).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update account profile query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return account.ErrEmailTaken
		}
		return crerr.Wrap(err, "update account profile")
	}
	return nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id string, role account.Role) error {
	query, args, err := qb.Update("accounts").
		Set("role", string(role)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update account role query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "update account role")
	}
	return nil
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	query, args, err := qb.Update("accounts").
		Set("last_login_at", at).
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build touch last login query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "touch last login")
	}
	return nil
}

func (r *AccountRepository) getOne(ctx context.Context, cond qb.Condition) (account.Account, bool, error) {
	query, args, err := qb.Select(accountSelectColumns...).From("accounts").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return account.Account{}, false, crerr.Wrap(err, "build select account query")
	}

	var row accountTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return account.Account{}, false, nil
		}
		return account.Account{}, false, crerr.Wrap(err, "select account")
	}
	return accountFromRow(row), true, nil
}

func accountFromRow(row accountTableModel) account.Account {
	return account.Account{
		ID:           row.PublicID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         account.Role(row.Role),
		CreatedAt:    row.CreatedAt,
		LastLoginAt:  row.LastLoginAt,
	}
}
