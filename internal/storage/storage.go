// Package storage holds the ordered key-value backends behind the ledger.
//
// Records live in numbered slots, one per collection. Keys inside a slot are
// unique and Values returns records in ascending key order.
package storage

import (
	"context"
	"fmt"
)

type Slot int

const (
	CustomersSlot    Slot = 0
	AccountsSlot     Slot = 1
	TransactionsSlot Slot = 2
	LoansSlot        Slot = 3
)

func (s Slot) String() string {
	switch s {
	case CustomersSlot:
		return "customers"
	case AccountsSlot:
		return "accounts"
	case TransactionsSlot:
		return "transactions"
	case LoansSlot:
		return "loans"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

func (s Slot) valid() bool {
	return s >= CustomersSlot && s <= LoansSlot
}

// Entry is one upsert inside a Commit. Value is the encoded record.
type Entry struct {
	Slot  Slot
	Key   string
	Value []byte
}

// Backend is the persistence capability the repositories are written against.
type Backend interface {
	Get(ctx context.Context, slot Slot, key string) ([]byte, bool, error)
	Values(ctx context.Context, slot Slot) ([][]byte, error)
	// Commit upserts every entry or none of them.
	Commit(ctx context.Context, entries ...Entry) error
	Close() error
}

func validateEntries(entries []Entry) error {
	for _, e := range entries {
		if !e.Slot.valid() {
			return fmt.Errorf("unknown storage slot %d", int(e.Slot))
		}
		if e.Key == "" {
			return fmt.Errorf("empty key for %s", e.Slot)
		}
	}
	return nil
}
