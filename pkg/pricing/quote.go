package pricing

import (
	"github.com/shopspring/decimal"

	"wstore/pkg/promotion"
)

// Line is one processed purchase request on the receipt.
type Line struct {
	Name     string
	Quantity int
	Cost     int
	Discount int
	Free     int
}

// Quote prices quantity units at price under kind. A nil kind is a regular
// sale. Percentage cost and discount are each rounded half-up on their own,
// so their sum can drift from price*quantity by one unit.
func Quote(name string, price, quantity int, kind promotion.Kind) Line {
	line := Line{Name: name, Quantity: quantity, Cost: price * quantity}

	switch k := kind.(type) {
	case promotion.BuyGetFree:
		sets := quantity / (k.Buy + k.Get)
		line.Free = sets * k.Get
		line.Discount = price * line.Free
		line.Cost = price * (quantity - line.Free)
	case promotion.PercentageOff:
		gross := decimal.NewFromInt(int64(price) * int64(quantity))
		line.Discount = roundHalfUp(gross.Mul(k.Rate))
		line.Cost = roundHalfUp(gross.Mul(decimal.NewFromInt(1).Sub(k.Rate)))
	}
	return line
}

// roundHalfUp rounds to a whole currency unit. Amounts are never negative,
// so decimal's half-away-from-zero rounding is half-up here.
func roundHalfUp(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
