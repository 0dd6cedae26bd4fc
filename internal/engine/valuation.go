package engine

import "github.com/shopspring/decimal"

// CentsPerPoint is the single source of truth for the comparability metric:
// the cash value of a redemption divided by the points it costs, times 100.
// Zero points yields zero, never a division error.
func CentsPerPoint(cashValue decimal.Decimal, pointsRequired int64) float64 {
	if pointsRequired == 0 {
		return 0
	}
	return cashValue.Div(decimal.NewFromInt(pointsRequired)).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
