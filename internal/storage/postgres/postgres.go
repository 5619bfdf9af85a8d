// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure PostgresStore implements storage.Store
var _ storage.Store = (*PostgresStore)(nil)

// Amounts are sent as text and cast server-side so no value passes through
// a binary float on the way in or out.
const (
	expenseColumns = "id, description, amount::text, paid_by, created_at"
	userColumns    = "id, email, display_name, password_hash, created_at, updated_at"
)

// PostgresStore implements storage.Store using a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Options tunes the connection pool.
type Options struct {
	MaxConns int32
}

// New connects to databaseURL, runs migrations and returns a ready store.
func New(ctx context.Context, databaseURL string, opts Options) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	poolConfig.HealthCheckPeriod = 15 * time.Second
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	if err := runMigrations(poolConfig.ConnConfig); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// AppendExpense persists an expense and its splits in one transaction.
func (s *PostgresStore) AppendExpense(ctx context.Context, expense *models.Expense, splits []*models.Split) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO expenses (id, description, amount, paid_by, created_at)
		 VALUES ($1, $2, $3::text::numeric, $4, $5)`,
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

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AppendSplit persists a single split against an existing expense.
func (s *PostgresStore) AppendSplit(ctx context.Context, split *models.Split) error {
	var payerID string
	err := s.pool.QueryRow(ctx, "SELECT paid_by FROM expenses WHERE id = $1", split.ExpenseID).Scan(&payerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("expense %s: %w", split.ExpenseID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}

	if err := insertSplit(ctx, s.pool, split); err != nil {
		return err
	}
	split.PayerID = payerID
	return nil
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertSplit(ctx context.Context, ex execer, split *models.Split) error {
	if split.ID == "" {
		split.ID = uuid.New().String()
	}
	_, err := ex.Exec(ctx,
		"INSERT INTO splits (id, expense_id, user_id, amount) VALUES ($1, $2, $3, $4::text::numeric)",
		split.ID, split.ExpenseID, split.UserID, split.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}
	return nil
}

// AllSplits returns every split joined with its expense's payer.
func (s *PostgresStore) AllSplits(ctx context.Context) ([]models.Split, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT s.id, s.expense_id, s.user_id, s.amount::text, e.paid_by
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
		var amount string
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &amount, &split.PayerID); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if split.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse split amount %q: %w", amount, err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// AllExpenses returns every expense, oldest first, without splits.
func (s *PostgresStore) AllExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.queryExpenses(ctx, "SELECT "+expenseColumns+" FROM expenses ORDER BY created_at, id")
}

// RecentExpenses returns up to limit expenses, newest first, with their splits.
func (s *PostgresStore) RecentExpenses(ctx context.Context, limit int) ([]models.Expense, error) {
	expenses, err := s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY created_at DESC, id DESC LIMIT $1",
		limit,
	)
	if err != nil || len(expenses) == 0 {
		return expenses, err
	}

	index := make(map[string]int, len(expenses))
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		index[e.ID] = i
		ids[i] = e.ID
	}

	rows, err := s.pool.Query(ctx,
		"SELECT id, expense_id, user_id, amount::text FROM splits WHERE expense_id = ANY($1) ORDER BY id",
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.Split
		var amount string
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if split.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse split amount %q: %w", amount, err)
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

func (s *PostgresStore) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var amount string
		if err := rows.Scan(&e.ID, &e.Description, &amount, &e.PaidBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
