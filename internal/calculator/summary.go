package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitForBalance represents a split with the minimal information needed for balance calculations.
type SplitForBalance struct {
	PayerID string // Who paid the parent expense
	OwerID  string // Who owes the split amount
	Amount  decimal.Decimal
}

// ExpenseForBalance represents an expense with the minimal information needed for the summary fallback.
type ExpenseForBalance struct {
	PayerID string
	Amount  decimal.Decimal
}

// FallbackPolicy decides when the global summary stops using splits and
// counts raw expense totals instead.
type FallbackPolicy int

const (
	// FallbackOnZeroTotals falls back whenever both split totals are exactly
	// zero. Splits that offset each other still count, so 10 owed each way does
	// not fire it. A subject whose only splits are self-splits does fire it,
	// a known false positive kept for compatibility with existing clients.
	FallbackOnZeroTotals FallbackPolicy = iota

	// FallbackWhenNoSplits falls back only when there are no splits at all.
	FallbackWhenNoSplits

	// FallbackDisabled never falls back.
	FallbackDisabled
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackOnZeroTotals:
		return "zero-totals"
	case FallbackWhenNoSplits:
		return "no-splits"
	case FallbackDisabled:
		return "off"
	default:
		return fmt.Sprintf("FallbackPolicy(%d)", int(p))
	}
}

// ParseFallbackPolicy parses the config spelling of a policy.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch s {
	case "", "zero-totals":
		return FallbackOnZeroTotals, nil
	case "no-splits":
		return FallbackWhenNoSplits, nil
	case "off":
		return FallbackDisabled, nil
	default:
		return 0, fmt.Errorf("unknown summary fallback policy %q", s)
	}
}

// Summary is the two-number view of a user's position across all expenses.
// All amounts are rounded to DisplayPlaces.
type Summary struct {
	OwedByMe decimal.Decimal
	OwedToMe decimal.Decimal
	Net      decimal.Decimal // OwedToMe - OwedByMe

	// UsedFallback is true when the totals came from raw expenses rather than splits.
	UsedFallback bool
}

// CalculateSummary computes the global summary for subject.
//
// Algorithm:
// - For each split: if subject paid and someone else owes, they owe subject;
//   if subject owes and someone else paid, subject owes them. Self-splits are ignored.
// - If the policy says so, replace the split totals with raw expense totals:
//   expenses subject paid count as owed to subject, all others as owed by subject.
// - net = owed_to_me - owed_by_me, rounded only at the end.
func CalculateSummary(subject string, splits []SplitForBalance, expenses []ExpenseForBalance, policy FallbackPolicy) Summary {
	owedByMe := decimal.Zero
	owedToMe := decimal.Zero

	for _, s := range splits {
		switch {
		case s.PayerID == subject && s.OwerID != subject:
			owedToMe = owedToMe.Add(s.Amount)
		case s.OwerID == subject && s.PayerID != subject:
			owedByMe = owedByMe.Add(s.Amount)
		}
	}

	fallback := false
	switch policy {
	case FallbackOnZeroTotals:
		fallback = owedByMe.IsZero() && owedToMe.IsZero()
	case FallbackWhenNoSplits:
		fallback = len(splits) == 0
	}

	if fallback {
		for _, e := range expenses {
			if e.PayerID == subject {
				owedToMe = owedToMe.Add(e.Amount)
			} else {
				owedByMe = owedByMe.Add(e.Amount)
			}
		}
	}

	return Summary{
		OwedByMe:     Round(owedByMe),
		OwedToMe:     Round(owedToMe),
		Net:          Round(owedToMe.Sub(owedByMe)),
		UsedFallback: fallback,
	}
}
