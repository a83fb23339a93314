// Package catalog loads the static product/service catalog from JSON data
// files and serves it read-only. Price text is normalized to an integer peso
// amount at load time; malformed prices fail the load rather than flowing
// into cart totals.
package catalog

import (
	"github.com/techsolutions/storefront/internal/money"
)

// Item kinds mirror the two purchasable catalog collections.
const (
	KindProduct = "product"
	KindService = "service"
)

// Item is one purchasable catalog entry.
type Item struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Category          string      `json:"category"`
	PriceText         string      `json:"priceText"`
	OriginalPriceText string      `json:"originalPriceText,omitempty"`
	DiscountPercent   int         `json:"discountPercent,omitempty"`
	Rating            float64     `json:"rating"`
	ImageURL          string      `json:"imageUrl"`
	Description       string      `json:"description"`
	Features          []string    `json:"features"`
	Technologies      []string    `json:"technologies"`
	Featured          bool        `json:"featured,omitempty"`
	Kind              string      `json:"kind"`
	UnitPrice         money.Money `json:"unitPrice"`
	Recurring         bool        `json:"recurring"`
}

// Testimonial is a customer quote displayed on the storefront.
type Testimonial struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Company  string  `json:"company"`
	Text     string  `json:"text"`
	Rating   float64 `json:"rating"`
	ImageURL string  `json:"imageUrl"`
}

// Catalog is the immutable in-memory snapshot of all data files.
type Catalog struct {
	Products     []Item
	Services     []Item
	Testimonials []Testimonial

	byID map[int64]Item
}

// Lookup returns the item with the given id, across both collections.
func (c *Catalog) Lookup(id int64) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	item, ok := c.byID[id]
	return item, ok
}
