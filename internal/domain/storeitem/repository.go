package storeitem

import (
	"context"

	"github.com/riskibarqy/volley-club/internal/domain/media"
)

// Repository persists store items ordered by name.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (Item, bool, error)
	Create(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item, image media.ImageChange) (Item, bool, error)
	Delete(ctx context.Context, id string) (Item, bool, error)
}
