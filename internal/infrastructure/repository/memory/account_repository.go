package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/account"
)

type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]account.Account
	emailID map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[string]account.Account),
		emailID: make(map[string]string),
	}
}

func (r *AccountRepository) Create(_ context.Context, item account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := account.NormalizeEmail(item.Email)
	if _, taken := r.emailID[email]; taken {
		return account.ErrEmailTaken
	}
	item.Email = email
	r.byID[item.ID] = item
	r.emailID[email] = item.ID
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (account.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	return item, ok, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (account.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailID[account.NormalizeEmail(email)]
	if !ok {
		return account.Account{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *AccountRepository) List(_ context.Context) ([]account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]account.Account, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *AccountRepository) UpdateProfile(_ context.Context, item account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[item.ID]
	if !ok {
		return nil
	}
	email := account.NormalizeEmail(item.Email)
	if owner, taken := r.emailID[email]; taken && owner != item.ID {
		return account.ErrEmailTaken
	}

	delete(r.emailID, current.Email)
	current.Name = item.Name
	current.Email = email
	current.PasswordHash = item.PasswordHash
	r.byID[item.ID] = current
	r.emailID[email] = item.ID
	return nil
}

func (r *AccountRepository) UpdateRole(_ context.Context, id string, role account.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.byID[id]; ok {
		current.Role = role
		r.byID[id] = current
	}
	return nil
}

func (r *AccountRepository) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.byID[id]; ok {
		current.LastLoginAt = &at
		r.byID[id] = current
	}
	return nil
}
