package command

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/strangecreator1911/icp-banking-system/internal/repository"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/events"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
	"github.com/strangecreator1911/icp-banking-system/shared/utils"
)

type CustomerCommandService struct {
	customers *repository.CustomerRepository
	publisher EventPublisher
	log       logrus.FieldLogger
}

func NewCustomerCommandService(
	customers *repository.CustomerRepository,
	publisher EventPublisher,
	log logrus.FieldLogger,
) *CustomerCommandService {
	return &CustomerCommandService{customers: customers, publisher: publisher, log: log}
}

func (s *CustomerCommandService) CreateCustomer(ctx context.Context, cmd cqrs.CreateCustomerCommand) (*models.Customer, error) {
	customer := &models.Customer{
		ID:        utils.GenerateID(),
		Name:      cmd.Name,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, events.CustomerCreated, events.CustomerCreatedEvent{
		CustomerID: customer.ID,
		Name:       customer.Name,
	}); err != nil {
		s.log.WithError(err).Warn("Failed to publish customer.created event")
	}
	s.log.WithField("customerId", customer.ID).Info("Customer created")
	return customer, nil
}
