package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/strangecreator1911/icp-banking-system/internal/repository"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/events"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
	"github.com/strangecreator1911/icp-banking-system/shared/utils"
)

// TransactionCommandService applies deposits and withdrawals. For a given
// account the funds check, the balance update and the transaction append run
// under one lock and land in one storage commit, so a failed attempt leaves
// nothing behind in the ledger.
type TransactionCommandService struct {
	accounts  *repository.AccountWriteRepository
	customers *repository.CustomerRepository
	writeRepo *repository.TransactionWriteRepository
	readRepo  *repository.AccountReadRepository
	publisher EventPublisher
	locks     *keyLocker
	log       logrus.FieldLogger
}

func NewTransactionCommandService(
	accounts *repository.AccountWriteRepository,
	customers *repository.CustomerRepository,
	writeRepo *repository.TransactionWriteRepository,
	readRepo *repository.AccountReadRepository,
	publisher EventPublisher,
	log logrus.FieldLogger,
) *TransactionCommandService {
	return &TransactionCommandService{
		accounts:  accounts,
		customers: customers,
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
		locks:     newKeyLocker(),
		log:       log,
	}
}

// PostTransaction deposits into or withdraws from an account and returns the
// updated account. A zero amount is a valid no-op movement and is still recorded.
func (s *TransactionCommandService) PostTransaction(ctx context.Context, cmd cqrs.PostTransactionCommand) (*models.Account, error) {
	if cmd.Amount.IsNegative() {
		return nil, cqrs.ErrInvalidAmount
	}
	var delta decimal.Decimal
	switch cmd.Type {
	case models.TransactionDeposit:
		delta = cmd.Amount
	case models.TransactionWithdrawal:
		delta = cmd.Amount.Neg()
	default:
		return nil, cqrs.ErrInvalidTransaction
	}

	// Lock order is always account, then customer.
	unlockAccount := s.locks.Lock("account:" + cmd.AccountID)
	defer unlockAccount()

	account, err := s.accounts.GetByID(ctx, cmd.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.reject(ctx, cmd, "account not found")
			return nil, cqrs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		s.reject(ctx, cmd, "insufficient funds")
		return nil, cqrs.ErrInsufficientFunds
	}

	unlockCustomer := s.locks.Lock("customer:" + account.CustomerID)
	defer unlockCustomer()

	customer, err := s.customers.GetByID(ctx, account.CustomerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Accounts created before referential checks may point nowhere.
		s.log.WithFields(logrus.Fields{
			"accountId":  account.AccountID,
			"customerId": account.CustomerID,
		}).Warn("Account owner missing, customer balance not updated")
		customer = nil
	case err != nil:
		return nil, fmt.Errorf("failed to load customer: %w", err)
	default:
		customer.Balance = customer.Balance.Add(delta)
	}

	now := time.Now().UTC()
	account.Balance = newBalance
	account.UpdatedAt = now
	txn := &models.Transaction{
		ID:        utils.GenerateID(),
		AccountID: account.AccountID,
		Amount:    cmd.Amount,
		Type:      cmd.Type,
		Timestamp: now,
	}
	if err := s.writeRepo.Record(ctx, txn, account, customer); err != nil {
		return nil, err
	}
	s.readRepo.RefreshAccountView(ctx, account.ToView())

	s.publish(ctx, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: txn.ID,
		AccountID:     txn.AccountID,
		Amount:        txn.Amount,
		Type:          txn.Type,
	})
	s.publish(ctx, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  account.AccountID,
		CustomerID: account.CustomerID,
		NewBalance: account.Balance,
		Change:     delta,
	})
	s.log.WithFields(logrus.Fields{
		"accountId":     account.AccountID,
		"transactionId": txn.ID,
		"type":          txn.Type,
		"amount":        txn.Amount.String(),
		"balance":       account.Balance.String(),
	}).Info("Transaction recorded")
	return account, nil
}

// reject leaves an audit trail for an attempt that never reached the ledger.
func (s *TransactionCommandService) reject(ctx context.Context, cmd cqrs.PostTransactionCommand, reason string) {
	s.log.WithFields(logrus.Fields{
		"accountId": cmd.AccountID,
		"type":      cmd.Type,
		"amount":    cmd.Amount.String(),
		"reason":    reason,
	}).Warn("Transaction rejected")
	s.publish(ctx, events.TransactionRejected, events.TransactionRejectedEvent{
		AccountID: cmd.AccountID,
		Amount:    cmd.Amount,
		Type:      cmd.Type,
		Reason:    reason,
	})
}

func (s *TransactionCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.log.WithError(err).Warnf("Failed to publish %s event", eventType)
	}
}
