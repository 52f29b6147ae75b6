package inventory

import "wstore/pkg/catalog"

// Stock is the mutable product list. It is only reachable from inside a
// Service transaction.
type Stock struct {
	products []catalog.Product
}

// FindAvailable returns the index of the first tier named name that still
// has stock.
func (s *Stock) FindAvailable(name string) (int, bool) {
	for i, p := range s.products {
		if p.Name == name && p.InStock() {
			return i, true
		}
	}
	return -1, false
}

// Product returns a copy of the tier at index i.
func (s *Stock) Product(i int) catalog.Product {
	return s.products[i]
}

// Take removes quantity units from the tier at index i. It refuses to drive
// stock below zero and leaves the tier untouched on error.
func (s *Stock) Take(i, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.products[i].Stock < quantity {
		return ErrInsufficientStock
	}
	s.products[i].Stock -= quantity
	return nil
}

// snapshot copies the tiers so callers cannot mutate the owned slice.
func (s *Stock) snapshot() []catalog.Product {
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}
