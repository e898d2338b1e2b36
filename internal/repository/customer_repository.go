package repository

import (
	"context"
	"fmt"

	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

type CustomerRepository struct {
	customers *Collection[models.Customer]
}

func NewCustomerRepository(backend storage.Backend) *CustomerRepository {
	return &CustomerRepository{customers: NewCollection[models.Customer](backend, storage.CustomersSlot)}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.customers.Insert(ctx, customer.ID, customer); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.customers.Get(ctx, id)
}
