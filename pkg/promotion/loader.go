package promotion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"wstore/internal/table"
)

var (
	ErrMalformedRow   = errors.New("promotion row must have name, buy, get, start_date and end_date")
	ErrInvalidCount   = errors.New("not a positive integer")
	ErrInvalidDate    = errors.New("not an ISO date")
	ErrInvertedWindow = errors.New("end date precedes start date")
	ErrEmptyName      = errors.New("promotion name is empty")
)

// LoadError reports that the promotion source could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load promotions %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FormatError pinpoints a malformed promotion row.
type FormatError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("promotion line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Load reads the promotion file at path, assigning kinds from rates.
func Load(path string, rates Rates) ([]Promotion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	promotions, err := Parse(f, rates)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return promotions, nil
}

// Parse reads a "name,buy,get,start_date,end_date" table.
func Parse(r io.Reader, rates Rates) ([]Promotion, error) {
	var promotions []Promotion
	err := table.Rows(r, func(line int, fields []string) error {
		p, err := parseRow(line, fields, rates)
		if err != nil {
			return err
		}
		promotions = append(promotions, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// parseRow turns one table row into a Promotion. Every rejection names the
// offending field so the operator can fix the file.
func parseRow(line int, fields []string, rates Rates) (Promotion, error) {
	if len(fields) != 5 {
		return Promotion{}, &FormatError{Line: line, Field: "row", Value: strings.Join(fields, ","), Err: ErrMalformedRow}
	}
	name := fields[0]
	if name == "" {
		return Promotion{}, &FormatError{Line: line, Field: "name", Value: name, Err: ErrEmptyName}
	}
	buy, err := parsePositive(fields[1])
	if err != nil {
		return Promotion{}, &FormatError{Line: line, Field: "buy", Value: fields[1], Err: err}
	}
	get, err := parsePositive(fields[2])
	if err != nil {
		return Promotion{}, &FormatError{Line: line, Field: "get", Value: fields[2], Err: err}
	}
	start, err := parseDate(fields[3])
	if err != nil {
		return Promotion{}, &FormatError{Line: line, Field: "start_date", Value: fields[3], Err: err}
	}
	end, err := parseDate(fields[4])
	if err != nil {
		return Promotion{}, &FormatError{Line: line, Field: "end_date", Value: fields[4], Err: err}
	}
	if end.Before(start) {
		return Promotion{}, &FormatError{Line: line, Field: "end_date", Value: fields[4], Err: ErrInvertedWindow}
	}

	return Promotion{
		Name:  name,
		Buy:   buy,
		Get:   get,
		Start: start,
		End:   end,
		Kind:  rates.kindFor(name, buy, get),
	}, nil
}

// parsePositive accepts counts of one or more; a zero buy or get would make
// the rule meaningless.
func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, ErrInvalidCount
	}
	return n, nil
}

// parseDate accepts a plain date or an RFC 3339 timestamp. Timestamps keep
// only the calendar date of their own offset.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return dateOf(t), nil
	}
	return time.Time{}, ErrInvalidDate
}
