package repository

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
	sharedredis "github.com/strangecreator1911/icp-banking-system/shared/redis"
)

const (
	accountViewKeyPrefix = "account:view:"
	// Bounds how long a view can outlive a failed refresh.
	accountViewTTL = 10 * time.Minute
)

// accountViewCache is the part of sharedredis.ViewCache the read side uses.
type accountViewCache interface {
	Get(ctx context.Context, key string) (*models.AccountView, bool)
	Set(ctx context.Context, key string, value *models.AccountView) error
	SetIfAbsent(ctx context.Context, key string, value *models.AccountView)
	Delete(ctx context.Context, key string)
}

// AccountReadRepository serves account views. With Redis configured it treats
// the cache as the primary read store and falls back to the backend on a miss.
//
// Only the command side, which holds the account lock, overwrites a cached
// view. Cold reads warm the cache with SET NX, so a reader that loaded an
// older balance cannot clobber the view a concurrent deposit just wrote.
type AccountReadRepository struct {
	accounts *Collection[models.Account]
	cache    accountViewCache
}

// NewAccountReadRepository builds the read side; a nil redisClient disables caching.
func NewAccountReadRepository(backend storage.Backend, redisClient *goredis.Client) *AccountReadRepository {
	r := &AccountReadRepository{accounts: NewCollection[models.Account](backend, storage.AccountsSlot)}
	if redisClient != nil {
		r.cache = sharedredis.NewViewCache[models.AccountView](redisClient, accountViewKeyPrefix, accountViewTTL)
	}
	return r
}

// GetViewByID returns an AccountView, trying Redis first then the backend.
func (r *AccountReadRepository) GetViewByID(ctx context.Context, id string) (*models.AccountView, error) {
	if r.cache != nil {
		if view, ok := r.cache.Get(ctx, id); ok {
			return view, nil
		}
	}

	account, err := r.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := account.ToView()
	if r.cache != nil {
		r.cache.SetIfAbsent(ctx, id, view)
	}
	return view, nil
}

// GetByID returns the full account record from the backend.
func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.accounts.Get(ctx, id)
}

// RefreshAccountView replaces the cached view after a committed change. Only
// the command side calls it, in commit order for the account. When the write
// fails the stale entry is dropped so the next read goes to the backend.
func (r *AccountReadRepository) RefreshAccountView(ctx context.Context, view *models.AccountView) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, view.AccountID, view); err != nil {
		r.cache.Delete(ctx, view.AccountID)
	}
}
