package query

import (
	"context"
	"errors"

	"github.com/strangecreator1911/icp-banking-system/internal/repository"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

type CustomerQueryService struct {
	customers *repository.CustomerRepository
}

func NewCustomerQueryService(customers *repository.CustomerRepository) *CustomerQueryService {
	return &CustomerQueryService{customers: customers}
}

func (s *CustomerQueryService) GetCustomer(ctx context.Context, q cqrs.GetCustomerQuery) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, q.CustomerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, cqrs.ErrCustomerNotFound
	}
	return customer, err
}
