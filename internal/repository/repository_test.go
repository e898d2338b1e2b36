package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

func TestCollectionNotFound(t *testing.T) {
	backend := storage.NewMemoryBackend()
	customers := NewCustomerRepository(backend)

	_, err := customers.GetByID(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordCommitsAllRecords(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	accounts := NewAccountWriteRepository(backend)
	customers := NewCustomerRepository(backend)
	writer := NewTransactionWriteRepository(backend)
	reader := NewTransactionReadRepository(backend)

	customer := &models.Customer{ID: "cus-1", Name: "Alice"}
	account := &models.Account{AccountID: "acc-1", CustomerID: "cus-1"}
	if err := customers.Create(ctx, customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if err := accounts.Create(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	account.Balance = decimal.NewFromInt(100)
	customer.Balance = decimal.NewFromInt(100)
	txn := &models.Transaction{
		ID: "txn-1", AccountID: "acc-1", Amount: decimal.NewFromInt(100),
		Type: models.TransactionDeposit, Timestamp: time.Now().UTC(),
	}
	if err := writer.Record(ctx, txn, account, customer); err != nil {
		t.Fatalf("Record: %v", err)
	}

	gotAccount, err := accounts.GetByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !gotAccount.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected account balance 100, got %s", gotAccount.Balance)
	}
	gotCustomer, err := customers.GetByID(ctx, "cus-1")
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if !gotCustomer.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected customer balance 100, got %s", gotCustomer.Balance)
	}
	history, err := reader.ListByAccountID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("ListByAccountID: %v", err)
	}
	if len(history) != 1 || history[0].ID != "txn-1" {
		t.Errorf("unexpected history %+v", history)
	}
}

func TestListByAccountIDFilters(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	writer := NewTransactionWriteRepository(backend)
	reader := NewTransactionReadRepository(backend)

	for i, accountID := range []string{"acc-1", "acc-2", "acc-1"} {
		txn := &models.Transaction{
			ID: []string{"t1", "t2", "t3"}[i], AccountID: accountID,
			Amount: decimal.NewFromInt(1), Type: models.TransactionDeposit,
		}
		if err := writer.Record(ctx, txn, &models.Account{AccountID: accountID}, nil); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	history, err := reader.ListByAccountID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("ListByAccountID: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(history))
	}
	for _, txn := range history {
		if txn.AccountID != "acc-1" {
			t.Errorf("unexpected account %s", txn.AccountID)
		}
	}

	none, err := reader.ListByAccountID(ctx, "acc-404")
	if err != nil {
		t.Fatalf("ListByAccountID: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestAccountReadRepositoryWithoutCache(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	writer := NewAccountWriteRepository(backend)
	reader := NewAccountReadRepository(backend, nil)

	if err := writer.Create(ctx, &models.Account{AccountID: "acc-1", CustomerID: "cus-1", Balance: decimal.NewFromInt(7)}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	view, err := reader.GetViewByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetViewByID: %v", err)
	}
	if view.CustomerID != "cus-1" || !view.Balance.Equal(decimal.NewFromInt(7)) {
		t.Errorf("unexpected view %+v", view)
	}
	if _, err := reader.GetViewByID(ctx, "acc-404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoanListByStatus(t *testing.T) {
	ctx := context.Background()
	loans := NewLoanRepository(storage.NewMemoryBackend())

	for id, status := range map[string]string{"l1": models.LoanPending, "l2": models.LoanApproved, "l3": models.LoanPending} {
		if err := loans.Save(ctx, &models.Loan{ID: id, CustomerID: "cus-1", Status: status}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	pending, err := loans.ListByStatus(ctx, models.LoanPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending loans, got %d", len(pending))
	}

	approved := pending[0]
	approved.Status = models.LoanApproved
	if err := loans.Save(ctx, &approved); err != nil {
		t.Fatalf("Save: %v", err)
	}
	pending, _ = loans.ListByStatus(ctx, models.LoanPending)
	if len(pending) != 1 {
		t.Errorf("expected 1 pending loan after update, got %d", len(pending))
	}
}
