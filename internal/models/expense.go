package models

import "github.com/shopspring/decimal"

// Expense is a single payment event.
// Once appended to the store it is never modified.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is what the money was spent on (e.g., "Dinner").
	Description string

	// Amount is the total paid. Positive by convention, not enforced.
	Amount decimal.Decimal

	// PaidBy is the ID of the user who paid.
	PaidBy string

	// CreatedAt is the Unix timestamp assigned by the store on append.
	CreatedAt int64

	// Splits are the obligations attached to this expense.
	// Only populated by reads that ask for them (e.g. RecentExpenses).
	Splits []Split
}

// Split is one user's obligation toward one expense.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID references the parent expense.
	ExpenseID string

	// UserID is the user who owes Amount to the expense's payer.
	UserID string

	// Amount is what UserID owes toward the expense.
	Amount decimal.Decimal

	// PayerID is the parent expense's PaidBy, resolved on read.
	// Empty on splits that have not been loaded from a store.
	PayerID string
}
