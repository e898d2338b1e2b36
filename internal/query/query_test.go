package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/strangecreator1911/icp-banking-system/internal/repository"
	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

func seedAccount(t *testing.T, backend storage.Backend, balance int64) (*models.Customer, *models.Account) {
	t.Helper()
	ctx := context.Background()
	customer := &models.Customer{ID: "c-1", Name: "Alice", Balance: decimal.NewFromInt(balance)}
	if err := repository.NewCustomerRepository(backend).Create(ctx, customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	account := &models.Account{AccountID: "a-1", CustomerID: customer.ID, Balance: decimal.NewFromInt(balance)}
	if err := repository.NewAccountWriteRepository(backend).Create(ctx, account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return customer, account
}

func TestCustomerQueryService(t *testing.T) {
	backend := storage.NewMemoryBackend()
	customer, _ := seedAccount(t, backend, 0)
	svc := NewCustomerQueryService(repository.NewCustomerRepository(backend))

	got, err := svc.GetCustomer(context.Background(), cqrs.GetCustomerQuery{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("GetCustomer: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("expected Alice, got %q", got.Name)
	}

	_, err = svc.GetCustomer(context.Background(), cqrs.GetCustomerQuery{CustomerID: "ghost"})
	if !errors.Is(err, cqrs.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestAccountQueryService(t *testing.T) {
	backend := storage.NewMemoryBackend()
	_, account := seedAccount(t, backend, 75)
	svc := NewAccountQueryService(repository.NewAccountReadRepository(backend, nil))
	ctx := context.Background()

	balance, err := svc.GetBalance(ctx, cqrs.GetBalanceQuery{AccountID: account.AccountID})
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if !balance.Balance.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected 75, got %s", balance.Balance)
	}

	got, err := svc.GetAccount(ctx, cqrs.GetAccountQuery{AccountID: account.AccountID})
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.CustomerID != account.CustomerID {
		t.Errorf("expected customer %s, got %s", account.CustomerID, got.CustomerID)
	}

	if _, err := svc.GetBalance(ctx, cqrs.GetBalanceQuery{AccountID: "ghost"}); !errors.Is(err, cqrs.ErrAccountNotFound) {
		t.Errorf("GetBalance: expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.GetAccount(ctx, cqrs.GetAccountQuery{AccountID: "ghost"}); !errors.Is(err, cqrs.ErrAccountNotFound) {
		t.Errorf("GetAccount: expected ErrAccountNotFound, got %v", err)
	}
}

func TestListTransactionsOrderedByTimestamp(t *testing.T) {
	backend := storage.NewMemoryBackend()
	customer, account := seedAccount(t, backend, 0)
	writeRepo := repository.NewTransactionWriteRepository(backend)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Ids sort opposite to timestamps so store order and time order disagree.
	txns := []*models.Transaction{
		{ID: "t-c", AccountID: account.AccountID, Amount: decimal.NewFromInt(1), Type: models.TransactionDeposit, Timestamp: base},
		{ID: "t-b", AccountID: account.AccountID, Amount: decimal.NewFromInt(2), Type: models.TransactionDeposit, Timestamp: base.Add(time.Minute)},
		{ID: "t-a", AccountID: account.AccountID, Amount: decimal.NewFromInt(3), Type: models.TransactionWithdrawal, Timestamp: base.Add(2 * time.Minute)},
		{ID: "t-x", AccountID: "other", Amount: decimal.NewFromInt(4), Type: models.TransactionDeposit, Timestamp: base},
	}
	for _, txn := range txns {
		if err := writeRepo.Record(ctx, txn, account, customer); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	svc := NewTransactionQueryService(repository.NewTransactionReadRepository(backend))
	got, err := svc.ListTransactions(ctx, cqrs.ListTransactionsQuery{AccountID: account.AccountID})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	wantIDs := []string{"t-c", "t-b", "t-a"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d transactions, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	empty, err := svc.ListTransactions(ctx, cqrs.ListTransactionsQuery{AccountID: "nobody"})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected a non-nil empty slice, got %#v", empty)
	}
}

func TestLoanQueryService(t *testing.T) {
	backend := storage.NewMemoryBackend()
	loans := repository.NewLoanRepository(backend)
	loan := &models.Loan{ID: "l-1", CustomerID: "c-1", Amount: decimal.NewFromInt(10), Status: models.LoanPending}
	if err := loans.Save(context.Background(), loan); err != nil {
		t.Fatalf("Save: %v", err)
	}
	svc := NewLoanQueryService(loans)

	got, err := svc.GetLoan(context.Background(), cqrs.GetLoanQuery{LoanID: "l-1"})
	if err != nil {
		t.Fatalf("GetLoan: %v", err)
	}
	if got.Status != models.LoanPending {
		t.Errorf("expected pending, got %s", got.Status)
	}
	if _, err := svc.GetLoan(context.Background(), cqrs.GetLoanQuery{LoanID: "ghost"}); !errors.Is(err, cqrs.ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound, got %v", err)
	}
}
