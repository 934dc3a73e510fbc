package leaguerow

import "context"

type Repository interface {
	List(ctx context.Context) ([]Row, error)
	GetByID(ctx context.Context, id string) (Row, bool, error)
	Create(ctx context.Context, row Row) error
	Update(ctx context.Context, row Row) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
