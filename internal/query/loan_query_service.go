package query

import (
	"context"
	"errors"

	"github.com/strangecreator1911/icp-banking-system/internal/repository"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

type LoanQueryService struct {
	loans *repository.LoanRepository
}

func NewLoanQueryService(loans *repository.LoanRepository) *LoanQueryService {
	return &LoanQueryService{loans: loans}
}

func (s *LoanQueryService) GetLoan(ctx context.Context, q cqrs.GetLoanQuery) (*models.Loan, error) {
	loan, err := s.loans.GetByID(ctx, q.LoanID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, cqrs.ErrLoanNotFound
	}
	return loan, err
}
