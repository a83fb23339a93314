package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/techsolutions/storefront/internal/money"
)

// Data file names expected under the catalog directory.
const (
	ProductsFile     = "products.json"
	ServicesFile     = "services.json"
	TestimonialsFile = "testimonials.json"
)

// Load reads all catalog data files from dir, normalizes every price to an
// integer peso amount, and verifies id uniqueness across products and
// services. Any malformed entry fails the whole load.
func Load(dir string) (*Catalog, error) {
	var productsDoc struct {
		Products []Item `json:"products"`
	}
	if err := readJSON(filepath.Join(dir, ProductsFile), &productsDoc); err != nil {
		return nil, err
	}
	var servicesDoc struct {
		Services []Item `json:"services"`
	}
	if err := readJSON(filepath.Join(dir, ServicesFile), &servicesDoc); err != nil {
		return nil, err
	}
	var testimonialsDoc struct {
		Testimonials []Testimonial `json:"testimonials"`
	}
	if err := readJSON(filepath.Join(dir, TestimonialsFile), &testimonialsDoc); err != nil {
		return nil, err
	}

	c := &Catalog{
		Products:     productsDoc.Products,
		Services:     servicesDoc.Services,
		Testimonials: testimonialsDoc.Testimonials,
		byID:         make(map[int64]Item, len(productsDoc.Products)+len(servicesDoc.Services)),
	}
	if err := c.normalize(c.Products, KindProduct); err != nil {
		return nil, err
	}
	if err := c.normalize(c.Services, KindService); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) normalize(items []Item, kind string) error {
	for i := range items {
		item := &items[i]
		item.Kind = kind
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("catalog: %s id %d: name is required", kind, item.ID)
		}
		unit, err := money.ParseCLP(item.PriceText)
		if err != nil {
			return fmt.Errorf("catalog: %s %q: %w", kind, item.Name, err)
		}
		item.UnitPrice = unit
		item.Recurring = money.IsRecurring(item.PriceText)
		if item.OriginalPriceText != "" {
			if _, err := money.ParseCLP(item.OriginalPriceText); err != nil {
				return fmt.Errorf("catalog: %s %q original price: %w", kind, item.Name, err)
			}
		}
		if _, exists := c.byID[item.ID]; exists {
			return fmt.Errorf("catalog: duplicate id %d (%s %q)", item.ID, kind, item.Name)
		}
		c.byID[item.ID] = *item
	}
	return nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
