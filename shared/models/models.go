package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, matching what clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
)

const (
	LoanPending  = "pending"
	LoanApproved = "approved"
	LoanRejected = "rejected"
)

// Customer.Balance is the sum of the balances of the customer's accounts.
type Customer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdTimestamp"`
}

type Account struct {
	AccountID  string          `json:"accountId"`
	CustomerID string          `json:"customerId"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdTimestamp"`
	UpdatedAt  time.Time       `json:"updatedTimestamp"`
}

type Transaction struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
}

type Loan struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdTimestamp"`
	DecidedAt  *time.Time      `json:"decidedTimestamp,omitempty"`
}

// IsPending reports whether the loan can still be approved or rejected.
func (l *Loan) IsPending() bool {
	return l.Status == LoanPending
}
