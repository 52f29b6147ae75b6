package catalog

// Product is one stock tier of a named item. A name can appear several times,
// typically once for the promotional batch and once for the regular remainder.
type Product struct {
	Name  string
	Price int
	Stock int
	// Promotion names the promotion rule for this tier, empty when none applies.
	Promotion string
}

// HasPromotion reports whether the tier references a promotion rule.
func (p Product) HasPromotion() bool {
	return p.Promotion != ""
}

// InStock reports whether at least one unit of the tier can be sold.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// EnsureExhaustedVariants returns a copy of products with one zero-stock,
// promotion-free tier appended for every name that has no zero-stock tier
// yet. The appended tier takes the price of the name's first tier, and
// appended tiers follow the order in which names first appear.
func EnsureExhaustedVariants(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	firstPrice := make(map[string]int)
	exhausted := make(map[string]bool)
	var names []string
	for _, p := range products {
		if _, seen := firstPrice[p.Name]; !seen {
			firstPrice[p.Name] = p.Price
			names = append(names, p.Name)
		}
		if p.Stock == 0 {
			exhausted[p.Name] = true
		}
	}

	for _, name := range names {
		if exhausted[name] {
			continue
		}
		out = append(out, Product{Name: name, Price: firstPrice[name]})
	}
	return out
}
