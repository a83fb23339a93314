// Package cart owns the shopping cart state and its pricing invariants.
// Every mutation produces a wholly new Cart value with derived totals
// recomputed synchronously, then writes the result through to durable
// key-value storage.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/techsolutions/storefront/internal/money"
)

// Line kinds. Kind affects display labelling only, never pricing.
const (
	KindProduct = "product"
	KindService = "service"
)

// vatRate is the fixed Chilean IVA applied to the subtotal.
var vatRate = decimal.New(19, -2)

// Entry is a catalog entry as offered to the cart; it carries no quantity.
type Entry struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	PriceText string      `json:"priceText"`
	UnitPrice money.Money `json:"unitPrice"`
	ImageURL  string      `json:"imageUrl"`
	Kind      string      `json:"kind"`
}

// Line is one catalog entry and its quantity within the cart. A line with
// quantity <= 0 never exists; reducing to zero removes the line.
type Line struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	PriceText string      `json:"priceText"`
	UnitPrice money.Money `json:"unitPrice"`
	ImageURL  string      `json:"imageUrl"`
	Kind      string      `json:"kind"`
	Quantity  int         `json:"quantity"`
}

// Cart aggregates lines and their derived monetary totals. Derived fields
// are always consistent with Lines; no rounding is applied at this layer.
type Cart struct {
	Lines     []Line          `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// Empty returns the zero-value cart with all derived fields zeroed.
func Empty() Cart {
	return Cart{
		Lines:     []Line{},
		Subtotal:  decimal.Zero,
		Tax:       decimal.Zero,
		Total:     decimal.Zero,
		ItemCount: 0,
	}
}

// Find returns the line with the given id, if present.
func (c Cart) Find(id int64) (Line, bool) {
	for _, line := range c.Lines {
		if line.ID == id {
			return line, true
		}
	}
	return Line{}, false
}

// Equal reports structural equality, comparing totals by numeric value.
func (c Cart) Equal(other Cart) bool {
	if c.ItemCount != other.ItemCount || len(c.Lines) != len(other.Lines) {
		return false
	}
	for i := range c.Lines {
		if c.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return c.Subtotal.Equal(other.Subtotal) &&
		c.Tax.Equal(other.Tax) &&
		c.Total.Equal(other.Total)
}

// calculateTotals rebuilds every derived field from the lines.
func calculateTotals(lines []Line) Cart {
	if lines == nil {
		lines = []Line{}
	}
	subtotal := decimal.Zero
	itemCount := 0
	for _, line := range lines {
		subtotal = subtotal.Add(money.Decimal(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity))))
		itemCount += line.Quantity
	}
	tax := subtotal.Mul(vatRate)
	return Cart{
		Lines:     lines,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		ItemCount: itemCount,
	}
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
