package inventory

import (
	"context"
	"errors"
	"time"

	"wstore/pkg/catalog"
)

// queueTimeout bounds how long a caller waits for the store goroutine to
// pick up its request.
const queueTimeout = 2 * time.Second

// command carries a transaction body to the goroutine that owns the stock.
type command struct {
	fn    func(*Stock) error
	reply chan error
}

// listQuery asks for a copy of the current product list.
type listQuery struct {
	reply chan []catalog.Product
}

// Service owns the run-long product list on a single goroutine. Every
// mutation is a transaction body executed there, so one checkout pass is
// never interleaved with another.
type Service struct {
	stock     *Stock
	commands  chan command
	listCalls chan listQuery
	quit      chan struct{}
}

// NewService takes ownership of a copy of products and starts the store goroutine.
func NewService(products []catalog.Product) *Service {
	owned := make([]catalog.Product, len(products))
	copy(owned, products)

	svc := &Service{
		stock:     &Stock{products: owned},
		commands:  make(chan command),
		listCalls: make(chan listQuery),
		quit:      make(chan struct{}),
	}
	go svc.loop()
	return svc
}

// loop is the only goroutine that touches the stock. Each command runs to
// completion before the next is received.
func (s *Service) loop() {
	for {
		select {
		case cmd := <-s.commands:
			cmd.reply <- cmd.fn(s.stock)
		case q := <-s.listCalls:
			q.reply <- s.stock.snapshot()
		case <-s.quit:
			return
		}
	}
}

// Transact runs fn with exclusive access to the stock and returns its error.
// fn must not retain the *Stock after returning. ctx only bounds the wait for
// the store goroutine: once fn is accepted, Transact waits for it to finish so
// a caller never abandons a pass whose mutations are already applied.
func (s *Service) Transact(ctx context.Context, fn func(*Stock) error) error {
	reply := make(chan error, 1)
	cmd := command{fn: fn, reply: reply}

	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return errors.New("inventory is closed")
	case <-time.After(queueTimeout):
		return errors.New("inventory queue is busy")
	}

	return <-reply
}

// List returns a copy of every tier, in catalog order, for rendering.
func (s *Service) List(ctx context.Context) ([]catalog.Product, error) {
	reply := make(chan []catalog.Product, 1)
	q := listQuery{reply: reply}

	select {
	case s.listCalls <- q:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.quit:
		return nil, errors.New("inventory is closed")
	case <-time.After(queueTimeout):
		return nil, errors.New("inventory queue is busy")
	}

	select {
	case products := <-reply:
		return products, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the background goroutine when the application shuts down.
func (s *Service) Close() {
	close(s.quit)
}
