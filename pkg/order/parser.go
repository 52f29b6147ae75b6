package order

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedToken is wrapped by every TokenError.
var ErrMalformedToken = errors.New("malformed purchase token")

// TokenError reports one order token that is not of the form [name-quantity].
type TokenError struct {
	Token  string
	Reason string
}

func (e *TokenError) Error() string {
	return "token " + strconv.Quote(e.Token) + ": " + e.Reason
}

func (e *TokenError) Unwrap() error { return ErrMalformedToken }

// IsValidation helps callers distinguish operator input mistakes from
// infrastructure failures.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMalformedToken)
}

// tokenPattern is greedy on the name, so "[a-b-3]" orders 3 of "a-b".
var tokenPattern = regexp.MustCompile(`^\[(.+)-(\d+)\]$`)

// ParseLine splits an operator line on commas and parses each token. Bad
// tokens are reported individually and skipped; the remaining requests are
// returned in input order.
func ParseLine(line string) ([]PurchaseRequest, []error) {
	var (
		requests []PurchaseRequest
		errs     []error
	)
	for _, raw := range strings.Split(line, ",") {
		req, err := parseToken(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		requests = append(requests, req)
	}
	return requests, errs
}

// parseToken matches one trimmed token. A quantity too large for an int is
// clamped so the request fails the stock check instead of the syntax check.
func parseToken(token string) (PurchaseRequest, error) {
	match := tokenPattern.FindStringSubmatch(token)
	if match == nil {
		return PurchaseRequest{}, &TokenError{Token: token, Reason: "expected [name-quantity]"}
	}
	name := strings.TrimSpace(match[1])
	if name == "" {
		return PurchaseRequest{}, &TokenError{Token: token, Reason: "name is required"}
	}
	quantity, err := strconv.Atoi(match[2])
	if errors.Is(err, strconv.ErrRange) {
		quantity = math.MaxInt
	} else if err != nil {
		return PurchaseRequest{}, &TokenError{Token: token, Reason: "quantity is not a number"}
	}
	if quantity <= 0 {
		return PurchaseRequest{}, &TokenError{Token: token, Reason: "quantity must be positive"}
	}
	return PurchaseRequest{Name: name, Quantity: quantity}, nil
}
