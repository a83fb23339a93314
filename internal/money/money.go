// Package money normalizes catalog price text into integer peso amounts and
// formats amounts back for display. Prices enter the system as strings such
// as "$1.299.990" or "$199/mes"; parsing happens once at catalog load so the
// rest of the system only handles numeric amounts.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value stored in whole pesos (CLP has no minor
// unit in practice).
type Money = int64

// RecurringSuffix marks a monthly recurring price in catalog text.
const RecurringSuffix = "/mes"

// ParseCLP converts Chilean-notation price text into an integer peso amount.
// It strips the currency symbol, surrounding whitespace, a trailing
// recurring-billing suffix, and "."/"," grouping separators. Anything left
// over that is not a plain digit sequence is an error.
func ParseCLP(text string) (Money, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return 0, fmt.Errorf("parse price: empty text")
	}
	recurring := strings.HasSuffix(strings.ToLower(cleaned), RecurringSuffix)
	if recurring {
		cleaned = cleaned[:len(cleaned)-len(RecurringSuffix)]
	}
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "$"))
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, fmt.Errorf("parse price %q: no digits", text)
	}
	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("parse price %q: negative amount", text)
	}
	return amount, nil
}

// IsRecurring reports whether the price text carries the monthly suffix.
func IsRecurring(text string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(text)), RecurringSuffix)
}

// FormatCLP renders an integer peso amount in Chilean notation, with dot
// grouping separators and an optional recurring suffix.
func FormatCLP(amount Money, recurring bool) string {
	digits := strconv.FormatInt(amount, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String()
	if negative {
		out = "-" + out
	}
	if recurring {
		out += RecurringSuffix
	}
	return out
}

// Decimal lifts an integer peso amount into decimal arithmetic.
func Decimal(amount Money) decimal.Decimal {
	return decimal.NewFromInt(amount)
}
