package promotion

import "github.com/shopspring/decimal"

// Kind selects how a promotion discounts a purchase line. The set of kinds
// is closed: BuyGetFree and PercentageOff.
type Kind interface {
	isKind()
}

// BuyGetFree grants Get free units for every Buy units paid for.
type BuyGetFree struct {
	Buy int
	Get int
}

// PercentageOff takes Rate (0 < Rate <= 1) off the line price.
type PercentageOff struct {
	Rate decimal.Decimal
}

func (BuyGetFree) isKind()    {}
func (PercentageOff) isKind() {}

// Rates maps promotion names to a percentage-off rate. A promotion missing
// from the table is a BuyGetFree built from its own buy and get columns.
type Rates map[string]decimal.Decimal

// RatesFromPercent converts whole percentages, e.g. 10 for ten percent.
func RatesFromPercent(percent map[string]int) Rates {
	rates := make(Rates, len(percent))
	for name, p := range percent {
		rates[name] = decimal.New(int64(p), -2)
	}
	return rates
}

// kindFor picks the percentage rule when the name has a configured rate and
// falls back to the row's buy/get counts otherwise.
func (r Rates) kindFor(name string, buy, get int) Kind {
	if rate, ok := r[name]; ok {
		return PercentageOff{Rate: rate}
	}
	return BuyGetFree{Buy: buy, Get: get}
}
