package catalog

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"wstore/internal/table"
)

// nullPromotion marks a tier without promotion in the source table.
const nullPromotion = "null"

// Load reads the catalog file at path. Read failures come back as *LoadError
// and malformed rows as *FormatError.
func Load(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	products, err := Parse(f)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return products, nil
}

// Parse reads a "name,price,quantity,promotion" table, keeping file order and
// appending the exhausted variants described by EnsureExhaustedVariants.
func Parse(r io.Reader) ([]Product, error) {
	var products []Product
	err := table.Rows(r, func(line int, fields []string) error {
		product, err := parseRow(line, fields)
		if err != nil {
			return err
		}
		products = append(products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return EnsureExhaustedVariants(products), nil
}

// parseRow turns one table row into a Product, mapping "null" to no promotion.
func parseRow(line int, fields []string) (Product, error) {
	if len(fields) != 4 {
		return Product{}, &FormatError{Line: line, Field: "row", Value: strings.Join(fields, ","), Err: ErrMalformedRow}
	}
	if fields[0] == "" {
		return Product{}, &FormatError{Line: line, Field: "name", Value: fields[0], Err: ErrEmptyName}
	}
	price, err := parseCount(fields[1])
	if err != nil {
		return Product{}, &FormatError{Line: line, Field: "price", Value: fields[1], Err: err}
	}
	stock, err := parseCount(fields[2])
	if err != nil {
		return Product{}, &FormatError{Line: line, Field: "stock", Value: fields[2], Err: err}
	}

	promotion := fields[3]
	if promotion == nullPromotion {
		promotion = ""
	}
	return Product{Name: fields[0], Price: price, Stock: stock, Promotion: promotion}, nil
}

// parseCount accepts zero, which is a legitimate price or stock level.
func parseCount(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
