package pricing

import "github.com/shopspring/decimal"

// Membership is the operator-optional discount taken off the post-promotion
// subtotal. A zero Limit leaves the discount uncapped.
type Membership struct {
	Rate  decimal.Decimal
	Limit int
}

// DefaultMembership is the flat 20% membership discount.
func DefaultMembership() Membership {
	return Membership{Rate: decimal.New(20, -2)}
}

// Receipt accumulates the lines of one shopping session.
type Receipt struct {
	Lines              []Line
	Total              int
	MembershipDiscount int

	membershipApplied bool
}

// add records an accepted line; only the paid cost counts toward Total.
func (r *Receipt) add(line Line) {
	r.Lines = append(r.Lines, line)
	r.Total += line.Cost
}

// ApplyMembership takes the membership discount off the running total and
// returns it. It applies at most once per receipt.
func (r *Receipt) ApplyMembership(m Membership) int {
	if r.membershipApplied {
		return r.MembershipDiscount
	}
	discount := roundHalfUp(decimal.NewFromInt(int64(r.Total)).Mul(m.Rate))
	if m.Limit > 0 && discount > m.Limit {
		discount = m.Limit
	}
	r.MembershipDiscount = discount
	r.Total -= discount
	r.membershipApplied = true
	return discount
}

// GrossTotal is the pre-promotion amount of every line.
func (r *Receipt) GrossTotal() int {
	sum := 0
	for _, l := range r.Lines {
		sum += l.Cost + l.Discount
	}
	return sum
}

// PromotionDiscount sums the promotional discount of every line.
func (r *Receipt) PromotionDiscount() int {
	sum := 0
	for _, l := range r.Lines {
		sum += l.Discount
	}
	return sum
}

// FreeLines returns, in request order, the lines that granted free units.
func (r *Receipt) FreeLines() []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.Free > 0 {
			out = append(out, l)
		}
	}
	return out
}

// Empty reports whether no request succeeded.
func (r *Receipt) Empty() bool {
	return len(r.Lines) == 0
}
