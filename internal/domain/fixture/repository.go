package fixture

import "context"

// Repository exposes fixture persistence, ordered by match date.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	GetByID(ctx context.Context, id string) (Fixture, bool, error)
	Create(ctx context.Context, item Fixture) error
	Update(ctx context.Context, item Fixture) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
