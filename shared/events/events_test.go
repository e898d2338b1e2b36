package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEventDecodeData(t *testing.T) {
	published := Event{
		Type:      LoanApplied,
		Timestamp: time.Now().UTC(),
		Data: LoanAppliedEvent{
			LoanID:     "loan-1",
			CustomerID: "cus-1",
			Amount:     decimal.NewFromInt(250),
		},
	}

	// Round-trip through JSON the way a stream consumer sees it.
	raw, err := json.Marshal(published)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var received Event
	if err := json.Unmarshal(raw, &received); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := received.Data.(map[string]any); !ok {
		t.Fatalf("expected generic map payload, got %T", received.Data)
	}

	var data LoanAppliedEvent
	if err := received.DecodeData(&data); err != nil {
		t.Fatalf("DecodeData: %v", err)
	}
	if data.LoanID != "loan-1" || data.CustomerID != "cus-1" {
		t.Errorf("unexpected payload %+v", data)
	}
	if !data.Amount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected amount 250, got %s", data.Amount)
	}
}

func TestEventDecodeDataTypeMismatch(t *testing.T) {
	ev := Event{Type: LoanApplied, Data: map[string]any{"amount": []int{1, 2}}}
	var data LoanAppliedEvent
	if err := ev.DecodeData(&data); err == nil {
		t.Error("expected error decoding a list into a decimal")
	}
}

func TestStreamFor(t *testing.T) {
	tests := []struct {
		eventType string
		stream    string
	}{
		{CustomerCreated, CustomerEventsStream},
		{AccountCreated, AccountEventsStream},
		{TransactionCreated, TransactionEventsStream},
		{TransactionRejected, TransactionEventsStream},
		{BalanceUpdated, TransactionEventsStream},
		{LoanApplied, LoanEventsStream},
		{LoanApproved, LoanEventsStream},
		{LoanRejected, LoanEventsStream},
	}
	for _, tt := range tests {
		stream, ok := StreamFor(tt.eventType)
		if !ok || stream != tt.stream {
			t.Errorf("StreamFor(%q) = %q, %v; want %q", tt.eventType, stream, ok, tt.stream)
		}
	}
	if _, ok := StreamFor("account.deleted"); ok {
		t.Error("expected no stream for an unknown event type")
	}
}

func TestPublishRejectsUnknownEventType(t *testing.T) {
	ctx := context.Background()
	// Unknown types are refused before Redis is touched, so a nil client is fine.
	if err := NewPublisher(nil).Publish(ctx, "account.deleted", nil); !errors.Is(err, ErrUnknownEventType) {
		t.Errorf("Publisher: expected ErrUnknownEventType, got %v", err)
	}
	if err := (NopPublisher{}).Publish(ctx, "account.deleted", nil); !errors.Is(err, ErrUnknownEventType) {
		t.Errorf("NopPublisher: expected ErrUnknownEventType, got %v", err)
	}
	if err := (NopPublisher{}).Publish(ctx, LoanApplied, nil); err != nil {
		t.Errorf("NopPublisher: unexpected error %v", err)
	}
}
