package events

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func TestNewExpenseRecorded(t *testing.T) {
	expense := &models.Expense{
		ID:        "e1",
		Amount:    decimal.RequireFromString("60.00"),
		PaidBy:    "alice",
		CreatedAt: 1700000000,
	}
	splits := []*models.Split{
		{UserID: "bob", Amount: decimal.NewFromInt(30)},
		{UserID: "alice", Amount: decimal.NewFromInt(10)},
		{UserID: "carol", Amount: decimal.NewFromInt(20)},
		{UserID: "bob", Amount: decimal.NewFromInt(5)},
	}

	msg := NewExpenseRecorded(expense, splits)
	if want := []string{"alice", "bob", "carol"}; !reflect.DeepEqual(msg.UserIDs, want) {
		t.Errorf("UserIDs = %v, want %v", msg.UserIDs, want)
	}
	if msg.Amount != "60" {
		t.Errorf("Amount = %q, want 60", msg.Amount)
	}
	if !msg.RecordedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("RecordedAt = %v", msg.RecordedAt)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	decoded, err := ExpenseRecordedFromJSON(body)
	if err != nil {
		t.Fatalf("ExpenseRecordedFromJSON failed: %v", err)
	}
	if decoded.ExpenseID != "e1" || !reflect.DeepEqual(decoded.UserIDs, msg.UserIDs) {
		t.Errorf("decoded message mismatch: %+v", decoded)
	}

	if _, err := ExpenseRecordedFromJSON([]byte("{")); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.PublishExpenseRecorded(context.Background(), &ExpenseRecorded{}); err != nil {
		t.Errorf("Nop publish returned %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Nop close returned %v", err)
	}
}
