// Package session runs the repeated shopping sessions of one operator.
package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wstore/pkg/console"
	"wstore/pkg/inventory"
	"wstore/pkg/order"
	"wstore/pkg/pricing"
	"wstore/pkg/receipt"
)

// State is a step of the shopping session state machine.
type State int

const (
	AwaitingOrder State = iota
	Processing
	AwaitingMembershipChoice
	Reporting
	AwaitingContinue
	Done
)

// String names the state for logs.
func (s State) String() string {
	switch s {
	case AwaitingOrder:
		return "awaiting-order"
	case Processing:
		return "processing"
	case AwaitingMembershipChoice:
		return "awaiting-membership-choice"
	case Reporting:
		return "reporting"
	case AwaitingContinue:
		return "awaiting-continue"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Clock supplies the date promotions are resolved against.
type Clock func() time.Time

// Dependencies groups what a Loop needs. Logger and Clock are optional.
type Dependencies struct {
	Stock      *inventory.Service
	Engine     *pricing.Engine
	Console    *console.Console
	Formatter  *receipt.Formatter
	Membership pricing.Membership
	Clock      Clock
	Logger     *zap.Logger
}

// Loop drives shopping sessions until the operator declines to continue or
// input ends. Stock persists across sessions; totals do not.
type Loop struct {
	deps Dependencies
}

// shoppingSession is the state of one pass through the machine. It is
// replaced wholesale when a new order is awaited.
type shoppingSession struct {
	id       string
	asOf     time.Time
	requests []order.PurchaseRequest
	receipt  *pricing.Receipt
}

// NewLoop fills in the optional dependencies.
func NewLoop(deps Dependencies) *Loop {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Formatter == nil {
		deps.Formatter = receipt.NewFormatter("")
	}
	return &Loop{deps: deps}
}

// Run loops until Done. End of input is a normal termination.
func (l *Loop) Run(ctx context.Context) error {
	s := &shoppingSession{}
	state := AwaitingOrder
	for state != Done {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch state {
		case AwaitingOrder:
			state, err = l.awaitOrder(ctx, s)
		case Processing:
			state, err = l.process(ctx, s)
		case AwaitingMembershipChoice:
			state, err = l.awaitMembership(s)
		case Reporting:
			state, err = l.report(s)
		case AwaitingContinue:
			state, err = l.awaitContinue()
		}
		if errors.Is(err, io.EOF) {
			l.deps.Logger.Info("operator input ended", zap.String("session", s.id))
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// awaitOrder starts a fresh session, shows the current stock and reads the
// order line. Malformed tokens are reported here; the rest go on to checkout.
func (l *Loop) awaitOrder(ctx context.Context, s *shoppingSession) (State, error) {
	*s = shoppingSession{id: uuid.NewString(), asOf: l.deps.Clock()}
	l.deps.Logger.Info("session started", zap.String("session", s.id), zap.Time("as_of", s.asOf))

	products, err := l.deps.Stock.List(ctx)
	if err != nil {
		return Done, err
	}
	c := l.deps.Console
	if err := c.Println(msgGreeting); err != nil {
		return Done, err
	}
	if err := c.Println(msgStockHeader); err != nil {
		return Done, err
	}
	if err := c.Println(); err != nil {
		return Done, err
	}
	if err := l.deps.Formatter.RenderStock(c, products); err != nil {
		return Done, err
	}
	if err := c.Println(); err != nil {
		return Done, err
	}

	input, err := c.Prompt(msgOrderPrompt)
	if err != nil {
		return Done, err
	}
	if declined(input) {
		return Done, c.Println(msgFarewell)
	}

	requests, tokenErrs := order.ParseLine(input)
	for _, tokenErr := range tokenErrs {
		l.deps.Logger.Debug("token rejected", zap.String("session", s.id), zap.Error(tokenErr))
		if err := c.Println(operatorMessage(tokenErr)); err != nil {
			return Done, err
		}
	}
	s.requests = requests
	return Processing, nil
}

// process runs the checkout pass. A receipt without lines skips the
// membership question.
func (l *Loop) process(ctx context.Context, s *shoppingSession) (State, error) {
	r, rejected, err := l.deps.Engine.Checkout(ctx, s.requests, s.asOf)
	if err != nil {
		return Done, err
	}
	for _, reqErr := range rejected {
		if err := l.deps.Console.Println(operatorMessage(reqErr)); err != nil {
			return Done, err
		}
	}
	s.receipt = r
	if r.Empty() {
		return Reporting, nil
	}
	return AwaitingMembershipChoice, nil
}

// awaitMembership asks once; anything but Y leaves the receipt as is.
func (l *Loop) awaitMembership(s *shoppingSession) (State, error) {
	if err := l.deps.Console.Println(); err != nil {
		return Done, err
	}
	input, err := l.deps.Console.Prompt(msgMembership)
	if err != nil {
		return Done, err
	}
	if accepted(input) {
		discount := s.receipt.ApplyMembership(l.deps.Membership)
		l.deps.Logger.Debug("membership applied", zap.String("session", s.id), zap.Int("discount", discount))
	}
	return Reporting, nil
}

// report prints the receipt and records its totals.
func (l *Loop) report(s *shoppingSession) (State, error) {
	if err := l.deps.Console.Println(); err != nil {
		return Done, err
	}
	if err := l.deps.Formatter.Render(l.deps.Console, s.receipt); err != nil {
		return Done, err
	}
	l.deps.Logger.Info("receipt issued",
		zap.String("session", s.id),
		zap.Int("lines", len(s.receipt.Lines)),
		zap.Int("gross", s.receipt.GrossTotal()),
		zap.Int("total", s.receipt.Total))
	return AwaitingContinue, nil
}

// awaitContinue starts another session unless the operator answers N.
func (l *Loop) awaitContinue() (State, error) {
	if err := l.deps.Console.Println(); err != nil {
		return Done, err
	}
	input, err := l.deps.Console.Prompt(msgContinue)
	if err != nil {
		return Done, err
	}
	if declined(input) {
		return Done, l.deps.Console.Println(msgFarewell)
	}
	return AwaitingOrder, nil
}

// accepted is strict: only Y opts in to the membership discount.
func accepted(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "Y")
}

// declined is strict the other way: only N stops the loop.
func declined(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "N")
}
