package player

import (
	"context"

	"github.com/riskibarqy/volley-club/internal/domain/media"
)

// Repository describes player persistence needs from use cases.
//
// Update applies image to the stored path while holding the row, then returns the
// record as it was before the change so callers can reap an image that is no longer
// referenced. Create and Update claim the pending media deletion of the image they
// write; Update and Delete record the obsolete image as pending in the same write.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player, image media.ImageChange) (Player, bool, error)
	Delete(ctx context.Context, id string) (Player, bool, error)
}
