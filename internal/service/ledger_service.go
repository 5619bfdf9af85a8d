package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/intake"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

const (
	DefaultExpenseLimit = 20
	MaxExpenseLimit     = 50
)

// LedgerService implements the Connect LedgerService.
// Every answer is recomputed from the stored facts; nothing is cached.
type LedgerService struct {
	store     storage.Store
	recorder  *intake.Recorder
	policy    calculator.FallbackPolicy
	publisher events.Publisher
	logger    *slog.Logger
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerOptions tune how the ledger records and summarizes.
type LedgerOptions struct {
	SplitMode intake.SplitMode
	Fallback  calculator.FallbackPolicy

	// Publisher receives an event per recorded expense. Nil disables publishing.
	Publisher events.Publisher
}

// NewLedgerService creates a LedgerService over store.
func NewLedgerService(store storage.Store, opts LedgerOptions, logger *slog.Logger) *LedgerService {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{
		store:     store,
		recorder:  intake.NewRecorder(store, opts.SplitMode),
		policy:    opts.Fallback,
		publisher: publisher,
		logger:    logger,
	}
}

// GetSummary returns the caller's global owed/owing totals.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	splits, err := s.store.AllSplits(ctx)
	if err != nil {
		s.logger.Error("GetSummary failed to load splits", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	expenses, err := s.store.AllExpenses(ctx)
	if err != nil {
		s.logger.Error("GetSummary failed to load expenses", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	summary := calculator.CalculateSummary(userID, splitsForBalance(splits), expensesForBalance(expenses), s.policy)
	if summary.UsedFallback {
		s.logger.Debug("Summary derived from raw expenses", "user_id", userID, "policy", s.policy)
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		TotalOwedByMe: toAmount(summary.OwedByMe),
		TotalOwedToMe: toAmount(summary.OwedToMe),
		NetBalance:    toAmount(summary.Net),
		UsedFallback:  summary.UsedFallback,
	}), nil
}

// GetBalances returns the caller's net position with each counterparty.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.AllSplits(ctx)
	if err != nil {
		s.logger.Error("GetBalances failed to load splits", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	splits := splitsForBalance(stored)

	users, err := s.store.GetUsersByIDs(ctx, calculator.Counterparties(userID, splits))
	if err != nil {
		s.logger.Error("GetBalances failed to resolve users", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	balances := calculator.CalculateBalances(userID, splits, users)

	return connect.NewResponse(&api.GetBalancesResponse{
		YouAreOwed: toAPIBalances(balances.YouAreOwed),
		YouOwe:     toAPIBalances(balances.YouOwe),
		Totals: &api.BalanceTotals{
			ToMe: toAmount(balances.Totals.ToMe),
			ByMe: toAmount(balances.Totals.ByMe),
			Net:  toAmount(balances.Totals.Net),
		},
	}), nil
}

// CreateExpense validates and appends an expense with its splits.
func (s *LedgerService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	in := intake.Request{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount.String(),
		PayerID:     req.Msg.PaidBy,
		Splits:      make([]intake.SplitRequest, 0, len(req.Msg.Splits)),
	}
	for _, sp := range req.Msg.Splits {
		if sp == nil {
			continue
		}
		in.Splits = append(in.Splits, intake.SplitRequest{UserID: sp.UserID, Amount: sp.Amount.String()})
	}

	result, err := s.recorder.Record(ctx, userID, in)
	if err != nil {
		s.logger.Warn("CreateExpense rejected", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense recorded",
		"user_id", userID,
		"expense_id", result.Expense.ID,
		"paid_by", result.Expense.PaidBy,
		"splits", len(result.Splits),
		"mode", s.recorder.Mode(),
	)
	if result.Warning != "" {
		s.logger.Warn("Split amounts do not match expense total",
			"expense_id", result.Expense.ID,
			"amount", result.Expense.Amount,
		)
	}

	s.publish(ctx, result)

	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense: toAPIExpense(result.Expense, result.Splits),
		Warning: result.Warning,
	}), nil
}

// publish announces a recorded expense. Failures are logged and never
// reach the caller; the expense is already committed.
func (s *LedgerService) publish(ctx context.Context, result *intake.Result) {
	msg := events.NewExpenseRecorded(result.Expense, result.Splits)
	if err := s.publisher.PublishExpenseRecorded(context.WithoutCancel(ctx), msg); err != nil {
		s.logger.Warn("Failed to publish expense event", "expense_id", result.Expense.ID, "error", err)
	}
}

// ListExpenses returns the most recent expenses with their splits.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := requireUserID(ctx); err != nil {
		return nil, err
	}

	limit := int(req.Msg.Limit)
	if limit <= 0 {
		limit = DefaultExpenseLimit
	}
	if limit > MaxExpenseLimit {
		limit = MaxExpenseLimit
	}

	expenses, err := s.store.RecentExpenses(ctx, limit)
	if err != nil {
		s.logger.Error("ListExpenses failed", "error", err)
		return nil, toConnectError(err)
	}

	results := make([]*api.Expense, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		splits := make([]*models.Split, len(e.Splits))
		for j := range e.Splits {
			splits[j] = &e.Splits[j]
		}
		results = append(results, toAPIExpense(e, splits))
	}

	return connect.NewResponse(&api.ListExpensesResponse{Results: results}), nil
}

// ListUsers returns every registered user.
func (s *LedgerService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	if _, err := requireUserID(ctx); err != nil {
		return nil, err
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logger.Error("ListUsers failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}

// PreviewEqualSplit divides an amount evenly without recording anything.
func (s *LedgerService) PreviewEqualSplit(ctx context.Context, req *connect.Request[api.PreviewEqualSplitRequest]) (*connect.Response[api.PreviewEqualSplitResponse], error) {
	if _, err := requireUserID(ctx); err != nil {
		return nil, err
	}

	total, err := decimal.NewFromString(strings.TrimSpace(req.Msg.Amount.String()))
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, &intake.ValidationError{Message: "amount must be a number", Err: err})
	}

	shares, err := calculator.EqualSplit(total, req.Msg.UserIDs)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	out := make([]*api.Share, len(shares))
	for i, sh := range shares {
		out[i] = &api.Share{UserID: sh.UserID, Amount: toAmount(sh.Amount)}
	}
	return connect.NewResponse(&api.PreviewEqualSplitResponse{Shares: out}), nil
}
