package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"StopLossCowboy/internal/model"
)

// DefaultDiscount is used when a row leaves the discount empty.
const DefaultDiscount = 0.1

var one = decimal.NewFromInt(1)

// ApplyDiscount returns peak * (1 - discount). discount must be in (0, 1].
func ApplyDiscount(peak, discount float64) (float64, error) {
	if !(discount > 0 && discount <= 1) {
		return 0, fmt.Errorf("%w: discount must be in range ]0, 1], got %v", model.ErrInvalidInput, discount)
	}
	p := decimal.NewFromFloat(peak)
	d := decimal.NewFromFloat(discount)
	return p.Mul(one.Sub(d)).InexactFloat64(), nil
}
