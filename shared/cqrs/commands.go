package cqrs

import "github.com/shopspring/decimal"

type CreateCustomerCommand struct {
	Name string
}

type CreateAccountCommand struct {
	CustomerID string
}

// PostTransactionCommand moves money in or out of an account. Type is one of
// models.TransactionDeposit or models.TransactionWithdrawal.
type PostTransactionCommand struct {
	AccountID string
	Amount    decimal.Decimal
	Type      string
}

type ApplyLoanCommand struct {
	CustomerID string
	Amount     decimal.Decimal
}

// DecideLoanCommand moves a pending loan to Status (approved or rejected).
type DecideLoanCommand struct {
	LoanID string
	Status string
}
