package cqrs

import "errors"

// Domain errors shared by the command and query sides. Handlers map them to
// HTTP statuses with errors.Is; anything else is an internal error.
var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidTransaction  = errors.New("unknown transaction type")
	ErrInvalidLoanDecision = errors.New("loan decision must be approved or rejected")
	ErrLoanAlreadyDecided  = errors.New("loan already decided")
)
