package account

import (
	"context"
	"time"
)

// Repository describes account persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Account) error
	GetByID(ctx context.Context, id string) (Account, bool, error)
	GetByEmail(ctx context.Context, email string) (Account, bool, error)
	List(ctx context.Context) ([]Account, error)
	UpdateProfile(ctx context.Context, item Account) error
	UpdateRole(ctx context.Context, id string, role Role) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
