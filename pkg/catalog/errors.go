package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRow is returned when a row does not have exactly four fields.
	ErrMalformedRow = errors.New("catalog row must have name, price, stock and promotion")
	// ErrInvalidNumber is returned when price or stock is not a non-negative integer.
	ErrInvalidNumber = errors.New("not a non-negative integer")
	// ErrEmptyName is returned when a row has a blank product name.
	ErrEmptyName = errors.New("product name is empty")
)

// LoadError reports that the catalog source could not be read at all.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FormatError pinpoints the row and field of a malformed catalog entry.
type FormatError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("catalog line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
