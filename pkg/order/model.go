package order

// PurchaseRequest describes a single product and the quantity requested in
// one "[name-quantity]" token.
type PurchaseRequest struct {
	Name     string
	Quantity int
}
