package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	CustomerCreated = "customer.created"

	AccountCreated = "account.created"

	TransactionCreated  = "transaction.created"
	TransactionRejected = "transaction.rejected"
	BalanceUpdated      = "balance.updated"

	LoanApplied  = "loan.applied"
	LoanApproved = "loan.approved"
	LoanRejected = "loan.rejected"
)

// Stream names
const (
	CustomerEventsStream    = "customer.events"
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
	LoanEventsStream        = "loan.events"
)

var streamsByType = map[string]string{
	CustomerCreated:     CustomerEventsStream,
	AccountCreated:      AccountEventsStream,
	TransactionCreated:  TransactionEventsStream,
	TransactionRejected: TransactionEventsStream,
	BalanceUpdated:      TransactionEventsStream,
	LoanApplied:         LoanEventsStream,
	LoanApproved:        LoanEventsStream,
	LoanRejected:        LoanEventsStream,
}

// StreamFor returns the stream an event type is published on.
func StreamFor(eventType string) (string, bool) {
	stream, ok := streamsByType[eventType]
	return stream, ok
}

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// DecodeData re-decodes the generic Data payload into out. Events read back
// from a stream carry Data as a map, so handlers use this to get a typed view.
func (e Event) DecodeData(out any) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", e.Type, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", e.Type, err)
	}
	return nil
}

type CustomerCreatedEvent struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
}

type AccountCreatedEvent struct {
	AccountID  string `json:"accountId"`
	CustomerID string `json:"customerId"`
}

// Transaction events
type TransactionCreatedEvent struct {
	TransactionID string          `json:"transactionId"`
	AccountID     string          `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
}

// TransactionRejectedEvent records an attempt that never reached the ledger.
type TransactionRejectedEvent struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Reason    string          `json:"reason"`
}

type BalanceUpdatedEvent struct {
	AccountID  string          `json:"accountId"`
	CustomerID string          `json:"customerId"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Change     decimal.Decimal `json:"change"`
}

// Loan events
type LoanAppliedEvent struct {
	LoanID     string          `json:"loanId"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
}

type LoanDecidedEvent struct {
	LoanID     string `json:"loanId"`
	CustomerID string `json:"customerId"`
	Status     string `json:"status"`
}
