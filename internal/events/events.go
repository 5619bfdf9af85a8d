// Package events publishes ledger facts to interested consumers after they
// are committed. Publication is best effort: the ledger never depends on it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// ExpenseRecordedKey is the routing key for ExpenseRecorded messages.
const ExpenseRecordedKey = "expense.recorded"

// Publisher announces committed ledger facts.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, msg *ExpenseRecorded) error
	Close() error
}

// ExpenseRecorded announces a newly appended expense. Consumers that cache
// balances can invalidate entries for every listed user.
type ExpenseRecorded struct {
	ExpenseID  string    `json:"expense_id"`
	PaidBy     string    `json:"paid_by"`
	Amount     string    `json:"amount"`
	UserIDs    []string  `json:"user_ids"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewExpenseRecorded builds the message for an expense and the splits that
// were actually saved. UserIDs holds the payer first, then each distinct ower.
func NewExpenseRecorded(expense *models.Expense, splits []*models.Split) *ExpenseRecorded {
	seen := map[string]bool{expense.PaidBy: true}
	userIDs := []string{expense.PaidBy}
	for _, s := range splits {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			userIDs = append(userIDs, s.UserID)
		}
	}
	return &ExpenseRecorded{
		ExpenseID:  expense.ID,
		PaidBy:     expense.PaidBy,
		Amount:     expense.Amount.String(),
		UserIDs:    userIDs,
		RecordedAt: time.Unix(expense.CreatedAt, 0).UTC(),
	}
}

func (m *ExpenseRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedFromJSON decodes a message body.
func ExpenseRecordedFromJSON(data []byte) (*ExpenseRecorded, error) {
	var msg ExpenseRecorded
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Nop discards every message. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishExpenseRecorded(context.Context, *ExpenseRecorded) error { return nil }

func (Nop) Close() error { return nil }
