package query

import (
	"context"
	"errors"

	"github.com/strangecreator1911/icp-banking-system/internal/repository"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

type AccountQueryService struct {
	readRepo *repository.AccountReadRepository
}

func NewAccountQueryService(readRepo *repository.AccountReadRepository) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

// GetAccount returns the full account record, timestamps included.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.Account, error) {
	account, err := s.readRepo.GetByID(ctx, q.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, cqrs.ErrAccountNotFound
	}
	return account, err
}

// GetBalance answers from the account view, which is served from Redis when
// the cache is enabled.
func (s *AccountQueryService) GetBalance(ctx context.Context, q cqrs.GetBalanceQuery) (*models.BalanceView, error) {
	view, err := s.readRepo.GetViewByID(ctx, q.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, cqrs.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.BalanceView{Balance: view.Balance}, nil
}
