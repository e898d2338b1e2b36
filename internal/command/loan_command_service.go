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

// LoanPolicy drives automatic review. Amounts up to AutoApproveLimit are
// approved, amounts above MaxAmount are rejected, and everything in between
// waits for a manual decision.
type LoanPolicy struct {
	AutoApproveLimit decimal.Decimal
	MaxAmount        decimal.Decimal
}

// decide returns the status the policy assigns to amount, or "" to leave the
// loan pending.
func (p LoanPolicy) decide(amount decimal.Decimal) string {
	switch {
	case amount.LessThanOrEqual(p.AutoApproveLimit):
		return models.LoanApproved
	case amount.GreaterThan(p.MaxAmount):
		return models.LoanRejected
	default:
		return ""
	}
}

// LoanCommandService owns the loan lifecycle: pending -> approved | rejected.
type LoanCommandService struct {
	loans     *repository.LoanRepository
	customers *repository.CustomerRepository
	publisher EventPublisher
	policy    LoanPolicy
	locks     *keyLocker
	log       logrus.FieldLogger
}

func NewLoanCommandService(
	loans *repository.LoanRepository,
	customers *repository.CustomerRepository,
	publisher EventPublisher,
	policy LoanPolicy,
	log logrus.FieldLogger,
) *LoanCommandService {
	return &LoanCommandService{
		loans:     loans,
		customers: customers,
		publisher: publisher,
		policy:    policy,
		locks:     newKeyLocker(),
		log:       log,
	}
}

func (s *LoanCommandService) ApplyLoan(ctx context.Context, cmd cqrs.ApplyLoanCommand) (*models.Loan, error) {
	if !cmd.Amount.IsPositive() {
		return nil, cqrs.ErrInvalidAmount
	}
	if _, err := s.customers.GetByID(ctx, cmd.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, cqrs.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	loan := &models.Loan{
		ID:         utils.GenerateID(),
		CustomerID: cmd.CustomerID,
		Amount:     cmd.Amount,
		Status:     models.LoanPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.loans.Save(ctx, loan); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.LoanApplied, events.LoanAppliedEvent{
		LoanID:     loan.ID,
		CustomerID: loan.CustomerID,
		Amount:     loan.Amount,
	}); err != nil {
		s.log.WithError(err).Warn("Failed to publish loan.applied event")
	}
	s.log.WithFields(logrus.Fields{
		"loanId":     loan.ID,
		"customerId": loan.CustomerID,
		"amount":     loan.Amount.String(),
	}).Info("Loan application received")
	return loan, nil
}

// DecideLoan records a manual approval or rejection.
func (s *LoanCommandService) DecideLoan(ctx context.Context, cmd cqrs.DecideLoanCommand) (*models.Loan, error) {
	if cmd.Status != models.LoanApproved && cmd.Status != models.LoanRejected {
		return nil, cqrs.ErrInvalidLoanDecision
	}

	unlock := s.locks.Lock(cmd.LoanID)
	defer unlock()

	loan, err := s.getLoan(ctx, cmd.LoanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsPending() {
		return nil, cqrs.ErrLoanAlreadyDecided
	}
	if err := s.applyDecision(ctx, loan, cmd.Status); err != nil {
		return nil, err
	}
	return loan, nil
}

// ReviewLoan applies the LoanPolicy to a pending loan. Loans that are already
// decided, or that the policy leaves for a human, are returned unchanged.
func (s *LoanCommandService) ReviewLoan(ctx context.Context, loanID string) (*models.Loan, error) {
	unlock := s.locks.Lock(loanID)
	defer unlock()

	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsPending() {
		return loan, nil
	}
	status := s.policy.decide(loan.Amount)
	if status == "" {
		return loan, nil
	}
	if err := s.applyDecision(ctx, loan, status); err != nil {
		return nil, err
	}
	return loan, nil
}

// ReviewPendingLoans runs ReviewLoan over every pending loan and reports how
// many were decided. It keeps going past individual failures.
func (s *LoanCommandService) ReviewPendingLoans(ctx context.Context) (int, error) {
	pending, err := s.loans.ListByStatus(ctx, models.LoanPending)
	if err != nil {
		return 0, err
	}

	decided := 0
	var errs []error
	for _, l := range pending {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		loan, err := s.ReviewLoan(ctx, l.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("loan %s: %w", l.ID, err))
			continue
		}
		if !loan.IsPending() {
			decided++
		}
	}
	return decided, errors.Join(errs...)
}

// HandleLoanEvent is the Redis stream subscriber handler. It reviews a loan as
// soon as its loan.applied event arrives; redelivery is harmless because
// decided loans are left alone.
func (s *LoanCommandService) HandleLoanEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.LoanApplied {
		return nil
	}
	var data events.LoanAppliedEvent
	if err := event.DecodeData(&data); err != nil {
		return err
	}
	if _, err := s.ReviewLoan(ctx, data.LoanID); err != nil {
		return fmt.Errorf("failed to review loan %s: %w", data.LoanID, err)
	}
	return nil
}

func (s *LoanCommandService) getLoan(ctx context.Context, id string) (*models.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, cqrs.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load loan: %w", err)
	}
	return loan, nil
}

// applyDecision must be called with the loan's lock held.
func (s *LoanCommandService) applyDecision(ctx context.Context, loan *models.Loan, status string) error {
	decidedAt := time.Now().UTC()
	loan.Status = status
	loan.DecidedAt = &decidedAt
	if err := s.loans.Save(ctx, loan); err != nil {
		return err
	}

	eventType := events.LoanApproved
	if status == models.LoanRejected {
		eventType = events.LoanRejected
	}
	if err := s.publisher.Publish(ctx, eventType, events.LoanDecidedEvent{
		LoanID:     loan.ID,
		CustomerID: loan.CustomerID,
		Status:     status,
	}); err != nil {
		s.log.WithError(err).Warnf("Failed to publish %s event", eventType)
	}
	s.log.WithFields(logrus.Fields{
		"loanId": loan.ID,
		"status": status,
	}).Info("Loan decided")
	return nil
}
