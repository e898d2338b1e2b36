package repository

import (
	"context"
	"fmt"

	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

type LoanRepository struct {
	loans *Collection[models.Loan]
}

func NewLoanRepository(backend storage.Backend) *LoanRepository {
	return &LoanRepository{loans: NewCollection[models.Loan](backend, storage.LoansSlot)}
}

// Save inserts or replaces the loan.
func (r *LoanRepository) Save(ctx context.Context, loan *models.Loan) error {
	if err := r.loans.Insert(ctx, loan.ID, loan); err != nil {
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	return r.loans.Get(ctx, id)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status string) ([]models.Loan, error) {
	all, err := r.loans.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	var matched []models.Loan
	for _, l := range all {
		if l.Status == status {
			matched = append(matched, l)
		}
	}
	return matched, nil
}
