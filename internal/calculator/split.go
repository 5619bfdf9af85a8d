package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Share is one participant's part of an equally split total.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// EqualSplit divides total equally among userIDs in whole cents.
// Leftover cents go one each to the first users in order, so the shares
// always sum to the total rounded to cents.
func EqualSplit(total decimal.Decimal, userIDs []string) ([]Share, error) {
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("total must be greater than zero")
	}

	// integer division in decimal; cent counts can exceed int64
	cents := total.Shift(DisplayPlaces).Round(0)
	base, remainder := cents.QuoRem(decimal.NewFromInt(int64(len(userIDs))), 0)
	extra := remainder.IntPart()

	shares := make([]Share, len(userIDs))
	for i, id := range userIDs {
		c := base
		if int64(i) < extra {
			c = c.Add(decimal.NewFromInt(1))
		}
		shares[i] = Share{UserID: id, Amount: c.Shift(-DisplayPlaces)}
	}
	return shares, nil
}
