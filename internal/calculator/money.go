package calculator

import "github.com/shopspring/decimal"

// DisplayPlaces is the number of fractional digits amounts are rounded to
// when they leave the calculator.
const DisplayPlaces = 2

// Round rounds an amount to display precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPlaces)
}
