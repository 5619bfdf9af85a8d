// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dataSourceName(dbPath)

	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dataSourceName enables foreign keys and a busy timeout on every pooled
// connection, not just the first one.
func dataSourceName(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AppendExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) AppendExpense(ctx context.Context, expense *models.Expense, splits []*models.Split) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, paid_by, created_at) VALUES (?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount.String(), expense.PaidBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range splits {
		split.ExpenseID = expense.ID
		if err := insertSplit(ctx, tx, split); err != nil {
			return err
		}
		split.PayerID = expense.PaidBy
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AppendSplit persists a single split against an existing expense.
func (s *SQLiteStore) AppendSplit(ctx context.Context, split *models.Split) error {
	var payerID string
	err := s.db.QueryRowContext(ctx, "SELECT paid_by FROM expenses WHERE id = ?", split.ExpenseID).Scan(&payerID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense %s: %w", split.ExpenseID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}

	if err := insertSplit(ctx, s.db, split); err != nil {
		return err
	}
	split.PayerID = payerID
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSplit(ctx context.Context, ex execer, split *models.Split) error {
	if split.ID == "" {
		split.ID = uuid.New().String()
	}
	_, err := ex.ExecContext(ctx,
		"INSERT INTO splits (id, expense_id, user_id, amount) VALUES (?, ?, ?, ?)",
		split.ID, split.ExpenseID, split.UserID, split.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}
	return nil
}

// AllSplits returns every split joined with its expense's payer.
func (s *SQLiteStore) AllSplits(ctx context.Context) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, s.amount, e.paid_by
		 FROM splits s JOIN expenses e ON e.id = s.expense_id
		 ORDER BY e.created_at, s.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.Amount, &split.PayerID); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}

// AllExpenses returns every expense, oldest first, without splits.
func (s *SQLiteStore) AllExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT id, description, amount, paid_by, created_at FROM expenses ORDER BY created_at, id",
	)
}

// RecentExpenses returns up to limit expenses, newest first, with their splits.
func (s *SQLiteStore) RecentExpenses(ctx context.Context, limit int) ([]models.Expense, error) {
	expenses, err := s.queryExpenses(ctx,
		"SELECT id, description, amount, paid_by, created_at FROM expenses ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	index := make(map[string]int, len(expenses))
	args := make([]any, len(expenses))
	for i, e := range expenses {
		index[e.ID] = i
		args[i] = e.ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, user_id, amount FROM splits
		 WHERE expense_id IN (?`+repeatPlaceholder(len(args)-1)+`)
		 ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		e := &expenses[index[split.ExpenseID]]
		split.PayerID = e.PaidBy
		e.Splits = append(e.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return expenses, nil
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PaidBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}
