package ledger

import (
	"github.com/shopspring/decimal"
)

// bitcornFractionDigits is the maximum number of fractional digits a
// Bitcorn amount may carry; anything finer has no Cornlet representation.
const bitcornFractionDigits = 6

// ParseBitcornAmount converts a decimal Bitcorn amount, as supplied by an
// external caller, into an integer Cornlet count. It rejects amounts that
// are not numeric, not strictly positive, or carry more than 6 fractional
// digits. Precision is checked before the positivity of the converted
// value so that "0.0000001" reports excess precision, not a zero amount.
func ParseBitcornAmount(raw string) (int64, error) {
	if raw == "" {
		return 0, ErrAmountRequired
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, ErrAmountNotPositive
	}

	if hasExcessPrecision(d) {
		return 0, ErrExcessPrecision
	}

	if !d.IsPositive() {
		return 0, ErrAmountNotPositive
	}

	return d.Shift(bitcornFractionDigits).IntPart(), nil
}

// hasExcessPrecision reports whether d has a non-zero digit beyond the
// sixth decimal place.
func hasExcessPrecision(d decimal.Decimal) bool {
	return !d.Equal(d.Truncate(bitcornFractionDigits))
}

// CornletsToBitcorn converts an internal Cornlet count to the decimal
// Bitcorn value used on the wire.
func CornletsToBitcorn(cornlets int64) float64 {
	f, _ := decimal.NewFromInt(cornlets).
		Div(decimal.NewFromInt(CornletsPerBitcorn)).
		Float64()
	return f
}
