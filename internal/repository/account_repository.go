package repository

import (
	"context"
	"fmt"

	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

// AccountWriteRepository handles account creation and authoritative reads.
// Balance changes go through TransactionWriteRepository.Record so they commit
// together with the transaction that caused them.
type AccountWriteRepository struct {
	accounts *Collection[models.Account]
}

func NewAccountWriteRepository(backend storage.Backend) *AccountWriteRepository {
	return &AccountWriteRepository{accounts: NewCollection[models.Account](backend, storage.AccountsSlot)}
}

func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.accounts.Insert(ctx, account.AccountID, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID always reads the store, never the cache.
func (r *AccountWriteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.accounts.Get(ctx, id)
}
