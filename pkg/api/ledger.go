package api

// User is the public projection of a user account.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	TotalOwedByMe float64 `json:"total_owed_by_me"`
	TotalOwedToMe float64 `json:"total_owed_to_me"`
	NetBalance    float64 `json:"net_balance"`

	// UsedFallback is true when totals were derived from raw expenses
	// because no split data contributed.
	UsedFallback bool `json:"used_fallback"`
}

type GetBalancesRequest struct{}

type CounterpartyBalance struct {
	User   *User   `json:"user"`
	Amount float64 `json:"amount"`
}

type BalanceTotals struct {
	ToMe float64 `json:"to_me"`
	ByMe float64 `json:"by_me"`
	Net  float64 `json:"net"`
}

type GetBalancesResponse struct {
	YouAreOwed []*CounterpartyBalance `json:"you_are_owed"`
	YouOwe     []*CounterpartyBalance `json:"you_owe"`
	Totals     *BalanceTotals         `json:"totals"`
}

type SplitInput struct {
	UserID string `json:"user_id"`
	Amount Amount `json:"amount"`
}

type CreateExpenseRequest struct {
	Description string `json:"description"`
	Amount      Amount `json:"amount"`

	// PaidBy defaults to the caller when empty.
	PaidBy string        `json:"paid_by,omitempty"`
	Splits []*SplitInput `json:"splits,omitempty"`
}

type Split struct {
	ID        string  `json:"id"`
	ExpenseID string  `json:"expense_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
}

type Expense struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	PaidBy      string   `json:"paid_by"`
	CreatedAt   int64    `json:"created_at"`
	Splits      []*Split `json:"splits"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
	Warning string   `json:"warning,omitempty"`
}

type ListExpensesRequest struct {
	// Limit defaults to 20 and is capped at 50.
	Limit int32 `json:"limit,omitempty"`
}

type ListExpensesResponse struct {
	Results []*Expense `json:"results"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type PreviewEqualSplitRequest struct {
	Amount  Amount   `json:"amount"`
	UserIDs []string `json:"user_ids"`
}

type Share struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

type PreviewEqualSplitResponse struct {
	Shares []*Share `json:"shares"`
}
