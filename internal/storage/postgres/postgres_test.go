package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// newTestStore connects to SPLITLEDGER_TEST_DATABASE_URL and empties the
// ledger tables. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("SPLITLEDGER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SPLITLEDGER_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url, Options{MaxConns: 4})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if _, err := store.pool.Exec(ctx, "TRUNCATE splits, expenses, users"); err != nil {
		store.Close()
		t.Fatalf("Failed to reset tables: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("alice@example.com", "Alice", "hash")
	bob := models.NewUser("bob@example.com", "Bob", "hash")
	for _, u := range []*models.User{alice, bob} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	t.Run("GetUserByID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("amounts keep full precision", func(t *testing.T) {
		expense := &models.Expense{
			Description: "Coffee",
			Amount:      decimal.RequireFromString("0.30"),
			PaidBy:      alice.ID,
		}
		splits := []*models.Split{
			{UserID: bob.ID, Amount: decimal.RequireFromString("0.1")},
			{UserID: bob.ID, Amount: decimal.RequireFromString("0.1")},
			{UserID: bob.ID, Amount: decimal.RequireFromString("0.1")},
		}
		if err := store.AppendExpense(ctx, expense, splits); err != nil {
			t.Fatalf("AppendExpense failed: %v", err)
		}

		all, err := store.AllSplits(ctx)
		if err != nil {
			t.Fatalf("AllSplits failed: %v", err)
		}
		sum := decimal.Zero
		for _, s := range all {
			if s.PayerID != alice.ID {
				t.Errorf("PayerID = %s, want %s", s.PayerID, alice.ID)
			}
			sum = sum.Add(s.Amount)
		}
		if !sum.Equal(decimal.RequireFromString("0.3")) {
			t.Errorf("split sum = %s, want 0.3", sum)
		}
	})

	t.Run("AppendSplit returns ErrNotFound for unknown expense", func(t *testing.T) {
		err := store.AppendSplit(ctx, &models.Split{ExpenseID: "nonexistent-id", UserID: bob.ID, Amount: decimal.NewFromInt(1)})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RecentExpenses includes splits", func(t *testing.T) {
		expenses, err := store.RecentExpenses(ctx, 20)
		if err != nil {
			t.Fatalf("RecentExpenses failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		if len(expenses[0].Splits) != 3 {
			t.Errorf("expected 3 splits, got %d", len(expenses[0].Splits))
		}
	})

	t.Run("GetUsersByIDs omits missing users", func(t *testing.T) {
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, "ghost"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(users) != 1 || users[alice.ID] == nil {
			t.Errorf("unexpected users: %v", users)
		}
	})
}
