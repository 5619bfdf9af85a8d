package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

// toAmount converts a decimal to the rounded float sent on the wire.
func toAmount(d decimal.Decimal) float64 {
	return calculator.Round(d).InexactFloat64()
}

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPISplit(s *models.Split) *api.Split {
	return &api.Split{
		ID:        s.ID,
		ExpenseID: s.ExpenseID,
		UserID:    s.UserID,
		Amount:    toAmount(s.Amount),
	}
}

func toAPIExpense(e *models.Expense, splits []*models.Split) *api.Expense {
	out := &api.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      toAmount(e.Amount),
		PaidBy:      e.PaidBy,
		CreatedAt:   e.CreatedAt,
		Splits:      make([]*api.Split, 0, len(splits)),
	}
	for _, s := range splits {
		out.Splits = append(out.Splits, toAPISplit(s))
	}
	return out
}

func toAPIBalances(entries []calculator.CounterpartyBalance) []*api.CounterpartyBalance {
	out := make([]*api.CounterpartyBalance, 0, len(entries))
	for _, e := range entries {
		out = append(out, &api.CounterpartyBalance{
			User:   toAPIUser(e.User),
			Amount: toAmount(e.Amount),
		})
	}
	return out
}

func splitsForBalance(splits []models.Split) []calculator.SplitForBalance {
	out := make([]calculator.SplitForBalance, len(splits))
	for i, s := range splits {
		out[i] = calculator.SplitForBalance{
			PayerID: s.PayerID,
			OwerID:  s.UserID,
			Amount:  s.Amount,
		}
	}
	return out
}

func expensesForBalance(expenses []models.Expense) []calculator.ExpenseForBalance {
	out := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		out[i] = calculator.ExpenseForBalance{
			PayerID: e.PaidBy,
			Amount:  e.Amount,
		}
	}
	return out
}
