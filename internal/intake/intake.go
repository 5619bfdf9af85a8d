// Package intake validates new expenses and appends them to the ledger.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// SplitMode decides what happens to a split entry that fails validation.
type SplitMode int

const (
	// SplitModeStrict rejects the whole expense if any split is invalid.
	// The expense and its splits are written as one unit.
	SplitModeStrict SplitMode = iota

	// SplitModeTolerant drops invalid splits and records the rest.
	// The expense is written first and each split on its own afterwards.
	SplitModeTolerant
)

func (m SplitMode) String() string {
	if m == SplitModeTolerant {
		return "tolerant"
	}
	return "strict"
}

// ParseSplitMode parses the config spelling of a split mode.
func ParseSplitMode(s string) (SplitMode, error) {
	switch s {
	case "", "strict":
		return SplitModeStrict, nil
	case "tolerant":
		return SplitModeTolerant, nil
	default:
		return 0, fmt.Errorf("unknown split mode %q", s)
	}
}

// SplitRequest is one requested obligation, as received from a client.
type SplitRequest struct {
	UserID string
	Amount string
}

// Request describes a new expense.
type Request struct {
	Description string
	Amount      string

	// PayerID is who paid. Empty means the caller paid.
	PayerID string

	Splits []SplitRequest
}

// Result is what was recorded.
type Result struct {
	Expense *models.Expense
	Splits  []*models.Split

	// Warning is MismatchWarning when splits were recorded and do not sum to
	// the expense amount, empty otherwise.
	Warning string
}

// Store is the subset of storage the recorder needs.
type Store interface {
	storage.UserResolver
	storage.FactWriter
}

// Recorder validates and appends expenses.
type Recorder struct {
	store Store
	mode  SplitMode
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store Store, mode SplitMode) *Recorder {
	return &Recorder{store: store, mode: mode}
}

// Mode reports the configured split mode.
func (r *Recorder) Mode() SplitMode {
	return r.mode
}

// Record validates req on behalf of callerID and appends the expense and its splits.
//
// Top-level problems (description, amount, payer) always abort. Split problems
// abort in strict mode and are skipped in tolerant mode.
func (r *Recorder) Record(ctx context.Context, callerID string, req Request) (*Result, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, invalid("description required")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return nil, &ValidationError{Message: "amount must be a number", Err: err}
	}

	payerID := req.PayerID
	if payerID == "" {
		payerID = callerID
	}
	if _, err := r.store.GetUserByID(ctx, payerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Kind: "user", ID: payerID, Err: err}
		}
		return nil, fmt.Errorf("failed to resolve payer: %w", err)
	}

	splits, err := r.validateSplits(ctx, req.Splits)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description: description,
		Amount:      amount,
		PaidBy:      payerID,
	}

	var recorded []*models.Split
	if r.mode == SplitModeStrict {
		if err := r.store.AppendExpense(ctx, expense, splits); err != nil {
			return nil, fmt.Errorf("failed to record expense: %w", err)
		}
		recorded = splits
	} else {
		if err := r.store.AppendExpense(ctx, expense, nil); err != nil {
			return nil, fmt.Errorf("failed to record expense: %w", err)
		}
		for _, split := range splits {
			split.ExpenseID = expense.ID
			if err := r.store.AppendSplit(ctx, split); err != nil {
				slog.Warn("Skipping split that failed to save",
					"expense_id", expense.ID,
					"user_id", split.UserID,
					"error", err,
				)
				continue
			}
			recorded = append(recorded, split)
		}
	}

	result := &Result{Expense: expense, Splits: recorded}
	if len(recorded) > 0 {
		sum := decimal.Zero
		for _, s := range recorded {
			sum = sum.Add(s.Amount)
		}
		if !sum.Equal(amount) {
			result.Warning = MismatchWarning
		}
	}

	return result, nil
}

// validateSplits resolves every split user and parses every amount.
// In strict mode the first bad entry fails the call; in tolerant mode bad
// entries are logged and left out.
func (r *Recorder) validateSplits(ctx context.Context, reqs []SplitRequest) ([]*models.Split, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(reqs))
	for _, s := range reqs {
		if s.UserID != "" {
			ids = append(ids, s.UserID)
		}
	}
	users, err := r.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve split users: %w", err)
	}

	splits := make([]*models.Split, 0, len(reqs))
	for i, s := range reqs {
		split, err := parseSplit(s, users)
		if err != nil {
			if r.mode == SplitModeStrict {
				return nil, &ValidationError{
					Message: fmt.Sprintf("invalid split: entry %d: %v", i, err),
					Err:     err,
				}
			}
			slog.Warn("Skipping invalid split", "index", i, "user_id", s.UserID, "error", err)
			continue
		}
		splits = append(splits, split)
	}
	return splits, nil
}

func parseSplit(s SplitRequest, users map[string]*models.User) (*models.Split, error) {
	if s.UserID == "" {
		return nil, errors.New("user_id required")
	}
	if _, ok := users[s.UserID]; !ok {
		return nil, &NotFoundError{Kind: "user", ID: s.UserID, Err: storage.ErrNotFound}
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(s.Amount))
	if err != nil {
		return nil, fmt.Errorf("amount %q must be a number", s.Amount)
	}
	return &models.Split{UserID: s.UserID, Amount: amount}, nil
}
