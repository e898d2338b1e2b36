package repository

import (
	"context"
	"fmt"

	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

// TransactionWriteRepository appends transactions. A transaction is only ever
// written together with the account (and customer) balances it changed.
type TransactionWriteRepository struct {
	backend      storage.Backend
	transactions *Collection[models.Transaction]
	accounts     *Collection[models.Account]
	customers    *Collection[models.Customer]
}

func NewTransactionWriteRepository(backend storage.Backend) *TransactionWriteRepository {
	return &TransactionWriteRepository{
		backend:      backend,
		transactions: NewCollection[models.Transaction](backend, storage.TransactionsSlot),
		accounts:     NewCollection[models.Account](backend, storage.AccountsSlot),
		customers:    NewCollection[models.Customer](backend, storage.CustomersSlot),
	}
}

// Record commits the transaction, the updated account and, when non-nil, the
// updated owning customer as one unit.
func (r *TransactionWriteRepository) Record(ctx context.Context, txn *models.Transaction, account *models.Account, customer *models.Customer) error {
	entries := make([]storage.Entry, 0, 3)

	accountEntry, err := r.accounts.Entry(account.AccountID, account)
	if err != nil {
		return err
	}
	entries = append(entries, accountEntry)

	if customer != nil {
		customerEntry, err := r.customers.Entry(customer.ID, customer)
		if err != nil {
			return err
		}
		entries = append(entries, customerEntry)
	}

	txnEntry, err := r.transactions.Entry(txn.ID, txn)
	if err != nil {
		return err
	}
	entries = append(entries, txnEntry)

	if err := r.backend.Commit(ctx, entries...); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// TransactionReadRepository answers history queries.
type TransactionReadRepository struct {
	transactions *Collection[models.Transaction]
}

func NewTransactionReadRepository(backend storage.Backend) *TransactionReadRepository {
	return &TransactionReadRepository{
		transactions: NewCollection[models.Transaction](backend, storage.TransactionsSlot),
	}
}

// ListByAccountID scans every transaction and keeps those for accountID, in
// store order.
func (r *TransactionReadRepository) ListByAccountID(ctx context.Context, accountID string) ([]models.Transaction, error) {
	all, err := r.transactions.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	matched := make([]models.Transaction, 0)
	for _, t := range all {
		if t.AccountID == accountID {
			matched = append(matched, t)
		}
	}
	return matched, nil
}
