// Package receipt renders stock listings and receipts for the operator.
package receipt

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"wstore/pkg/catalog"
	"wstore/pkg/pricing"
)

// DefaultUnit is appended to every amount in place of a currency symbol.
const DefaultUnit = "원"

// Formatter turns amounts into grouped digits followed by a unit suffix.
// A Formatter is not safe for concurrent use.
type Formatter struct {
	printer *message.Printer
	unit    string
}

// NewFormatter groups digits the Korean way and suffixes unit. An empty
// unit falls back to DefaultUnit.
func NewFormatter(unit string) *Formatter {
	if unit == "" {
		unit = DefaultUnit
	}
	return &Formatter{printer: message.NewPrinter(language.Korean), unit: unit}
}

// Digits formats n with thousands separators and no decimals.
func (f *Formatter) Digits(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Money formats n as grouped digits followed by the unit.
func (f *Formatter) Money(n int) string {
	return f.Digits(n) + f.unit
}

// RenderStock writes one line per tier in inventory order.
func (f *Formatter) RenderStock(w io.Writer, products []catalog.Product) error {
	var b strings.Builder
	for _, p := range products {
		if !p.InStock() {
			fmt.Fprintf(&b, "- %s %s 재고 없음\n", p.Name, f.Money(p.Price))
			continue
		}
		fmt.Fprintf(&b, "- %s %s %d개", p.Name, f.Money(p.Price), p.Stock)
		if p.HasPromotion() {
			b.WriteString(" " + p.Promotion)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Render writes purchase lines, free-item lines and the summary of r.
func (f *Formatter) Render(w io.Writer, r *pricing.Receipt) error {
	var b strings.Builder
	b.WriteString("=============W 편의점================\n")
	b.WriteString("상품명\t\t수량\t금액\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s\t\t%d\t%s\n", l.Name, l.Quantity, f.Money(l.Cost))
	}
	b.WriteString("============증\t정===============\n")
	for _, l := range r.FreeLines() {
		fmt.Fprintf(&b, "%s\t\t%d\n", l.Name, l.Free)
	}
	b.WriteString("====================================\n")
	fmt.Fprintf(&b, "총구매액\t\t%s\n", f.Money(r.GrossTotal()))
	fmt.Fprintf(&b, "행사할인\t\t-%s\n", f.Money(r.PromotionDiscount()))
	fmt.Fprintf(&b, "멤버십할인\t\t-%s\n", f.Money(r.MembershipDiscount))
	fmt.Fprintf(&b, "내실돈\t\t %s\n", f.Money(r.Total))
	_, err := io.WriteString(w, b.String())
	return err
}
