// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist.
var ErrNotFound = errors.New("not found")

// UserResolver looks up users by ID.
type UserResolver interface {
	// GetUserByID returns the user or an error wrapping ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns a map of user ID to User.
	// Users that don't exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// UserStore adds the writes and lookups the auth layer needs.
type UserStore interface {
	UserResolver

	// CreateUser inserts a new user. The email must be unique.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns the user or an error wrapping ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users ordered by display name.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// FactReader is the read path over ledger facts.
type FactReader interface {
	// AllSplits returns every split with PayerID resolved from its parent expense.
	AllSplits(ctx context.Context) ([]models.Split, error)

	// AllExpenses returns every expense, without splits.
	AllExpenses(ctx context.Context) ([]models.Expense, error)

	// RecentExpenses returns the newest expenses first, with their splits.
	RecentExpenses(ctx context.Context, limit int) ([]models.Expense, error)
}

// FactWriter is the append-only write path over ledger facts.
type FactWriter interface {
	// AppendExpense persists an expense and the given splits as one atomic unit.
	// IDs and CreatedAt are assigned by the store when empty; split ExpenseIDs
	// are set to the expense ID.
	AppendExpense(ctx context.Context, expense *models.Expense, splits []*models.Split) error

	// AppendSplit persists a single split against an existing expense.
	AppendSplit(ctx context.Context, split *models.Split) error
}

// Store defines the full set of storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	UserStore
	FactReader
	FactWriter

	// Close releases any resources held by the store.
	Close() error
}
