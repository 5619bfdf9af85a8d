package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// CounterpartyBalance is what one other user owes subject, or is owed by subject.
type CounterpartyBalance struct {
	User   *models.User
	Amount decimal.Decimal // Always positive, rounded
}

// BalanceTotals aggregates the per-counterparty lists.
type BalanceTotals struct {
	ToMe decimal.Decimal
	ByMe decimal.Decimal
	Net  decimal.Decimal // ToMe - ByMe
}

// Balances is the per-counterparty ledger for one user.
type Balances struct {
	YouAreOwed []CounterpartyBalance // Counterparties who owe subject, largest first
	YouOwe     []CounterpartyBalance // Counterparties subject owes, largest first
	Totals     BalanceTotals
}

// netByCounterparty maps counterparty ID to a signed net.
// Positive = counterparty owes subject, negative = subject owes counterparty.
func netByCounterparty(subject string, splits []SplitForBalance) map[string]decimal.Decimal {
	nets := make(map[string]decimal.Decimal)
	for _, s := range splits {
		switch {
		case s.PayerID == subject && s.OwerID != subject:
			nets[s.OwerID] = nets[s.OwerID].Add(s.Amount)
		case s.OwerID == subject && s.PayerID != subject:
			nets[s.PayerID] = nets[s.PayerID].Sub(s.Amount)
		}
	}
	return nets
}

// Counterparties returns the sorted IDs of every user subject has a split relation with.
// Callers use it to know which users to resolve before CalculateBalances.
func Counterparties(subject string, splits []SplitForBalance) []string {
	nets := netByCounterparty(subject, splits)
	ids := make([]string, 0, len(nets))
	for id := range nets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CalculateBalances computes per-counterparty net balances for subject from splits only.
// Unlike CalculateSummary there is no expense fallback: no splits means empty lists.
//
// Counterparties missing from users are skipped and contribute nothing to the totals.
// Counterparties whose net is exactly zero appear in neither list.
func CalculateBalances(subject string, splits []SplitForBalance, users map[string]*models.User) Balances {
	nets := netByCounterparty(subject, splits)

	ids := make([]string, 0, len(nets))
	for id := range nets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := Balances{
		YouAreOwed: []CounterpartyBalance{},
		YouOwe:     []CounterpartyBalance{},
	}
	toMe := decimal.Zero
	byMe := decimal.Zero

	for _, id := range ids {
		user, ok := users[id]
		if !ok || user == nil {
			continue
		}
		net := nets[id]
		entry := CounterpartyBalance{User: user, Amount: Round(net.Abs())}
		switch net.Sign() {
		case 1:
			result.YouAreOwed = append(result.YouAreOwed, entry)
			toMe = toMe.Add(net)
		case -1:
			result.YouOwe = append(result.YouOwe, entry)
			byMe = byMe.Add(net.Neg())
		}
	}

	// ids were sorted, so stable sorting leaves ties ordered by user ID
	sortLargestFirst(result.YouAreOwed)
	sortLargestFirst(result.YouOwe)

	result.Totals = BalanceTotals{
		ToMe: Round(toMe),
		ByMe: Round(byMe),
		Net:  Round(toMe.Sub(byMe)),
	}
	return result
}

func sortLargestFirst(entries []CounterpartyBalance) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})
}
