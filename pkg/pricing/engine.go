package pricing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wstore/pkg/inventory"
	"wstore/pkg/order"
	"wstore/pkg/promotion"
)

// RequestError reports a purchase request that was skipped.
type RequestError struct {
	Request order.PurchaseRequest
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("purchase %s x%d: %v", e.Request.Name, e.Request.Quantity, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Engine prices purchase requests against the shared inventory.
type Engine struct {
	stock      *inventory.Service
	promotions *promotion.Registry
	logger     *zap.Logger
}

// NewEngine wires the engine to the inventory it is allowed to mutate.
func NewEngine(stock *inventory.Service, promotions *promotion.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{stock: stock, promotions: promotions, logger: logger}
}

// Checkout processes requests in order as one inventory transaction.
// Requests that cannot be served come back as *RequestError and leave stock
// and totals untouched; the others are priced as of asOf, taken from stock
// and added to the receipt. The error result is reserved for failures of
// the inventory itself.
func (e *Engine) Checkout(ctx context.Context, requests []order.PurchaseRequest, asOf time.Time) (*Receipt, []error, error) {
	receipt := &Receipt{}
	var rejected []error

	err := e.stock.Transact(ctx, func(stock *inventory.Stock) error {
		for _, req := range requests {
			line, err := e.apply(stock, req, asOf)
			if err != nil {
				e.logger.Debug("purchase rejected",
					zap.String("product", req.Name),
					zap.Int("quantity", req.Quantity),
					zap.Error(err))
				rejected = append(rejected, &RequestError{Request: req, Err: err})
				continue
			}
			receipt.add(line)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("checkout: %w", err)
	}

	e.logger.Info("checkout processed",
		zap.Int("requested", len(requests)),
		zap.Int("accepted", len(receipt.Lines)),
		zap.Int("total", receipt.Total))
	return receipt, rejected, nil
}

// apply serves one request from the first tier with stock left. The whole
// quantity must fit that tier; the promotion is resolved only after the
// stock check passes.
func (e *Engine) apply(stock *inventory.Stock, req order.PurchaseRequest, asOf time.Time) (Line, error) {
	i, ok := stock.FindAvailable(req.Name)
	if !ok {
		return Line{}, inventory.ErrUnavailable
	}
	product := stock.Product(i)
	if product.Stock < req.Quantity {
		return Line{}, inventory.ErrInsufficientStock
	}

	var kind promotion.Kind
	if product.HasPromotion() {
		if p, ok := e.promotions.ResolveActive(product.Promotion, asOf); ok {
			kind = p.Kind
		}
	}

	line := Quote(product.Name, product.Price, req.Quantity, kind)
	if err := stock.Take(i, req.Quantity); err != nil {
		return Line{}, err
	}
	return line, nil
}
