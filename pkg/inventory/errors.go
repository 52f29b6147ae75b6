package inventory

import "errors"

var (
	// ErrUnavailable is returned when no tier of the product has stock left.
	ErrUnavailable = errors.New("product is unknown or out of stock")
	// ErrInsufficientStock is returned when a request exceeds the stock of the tier it resolved to.
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
