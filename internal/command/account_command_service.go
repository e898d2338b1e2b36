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

// AccountCommandService opens accounts for existing customers.
type AccountCommandService struct {
	customers *repository.CustomerRepository
	writeRepo *repository.AccountWriteRepository
	readRepo  *repository.AccountReadRepository
	publisher EventPublisher
	log       logrus.FieldLogger
}

func NewAccountCommandService(
	customers *repository.CustomerRepository,
	writeRepo *repository.AccountWriteRepository,
	readRepo *repository.AccountReadRepository,
	publisher EventPublisher,
	log logrus.FieldLogger,
) *AccountCommandService {
	return &AccountCommandService{
		customers: customers,
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
		log:       log,
	}
}

func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	if _, err := s.customers.GetByID(ctx, cmd.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, cqrs.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	now := time.Now().UTC()
	account := &models.Account{
		AccountID:  utils.GenerateID(),
		CustomerID: cmd.CustomerID,
		Balance:    decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.writeRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.readRepo.RefreshAccountView(ctx, account.ToView())

	if err := s.publisher.Publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:  account.AccountID,
		CustomerID: account.CustomerID,
	}); err != nil {
		s.log.WithError(err).Warn("Failed to publish account.created event")
	}
	s.log.WithFields(logrus.Fields{
		"accountId":  account.AccountID,
		"customerId": account.CustomerID,
	}).Info("Account created")
	return account, nil
}
