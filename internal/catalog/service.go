package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/techsolutions/storefront/internal/cart"
)

// CategoryAll is the filter value matching every category.
const CategoryAll = "todos"

// Service serves the loaded catalog, optionally caching rendered lists.
type Service struct {
	catalog *Catalog
	cache   *Cache
	log     zerolog.Logger
}

// ServiceConfig configures catalog service construction.
type ServiceConfig struct {
	Catalog *Catalog
	Cache   *Cache
	Logger  zerolog.Logger
}

// NewService wires the catalog service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("catalog: catalog snapshot is required")
	}
	return &Service{catalog: cfg.Catalog, cache: cfg.Cache, log: cfg.Logger}, nil
}

// Products lists products, optionally filtered by category and featured.
func (s *Service) Products(ctx context.Context, category string, featuredOnly bool) []Item {
	key := listCacheKey("products", category, featuredOnly)
	if cached, ok := s.cachedList(ctx, key); ok {
		return cached
	}
	out := filterItems(s.catalog.Products, category, featuredOnly)
	s.storeList(ctx, key, out)
	return out
}

// Services lists services, optionally filtered by category.
func (s *Service) Services(ctx context.Context, category string) []Item {
	key := listCacheKey("services", category, false)
	if cached, ok := s.cachedList(ctx, key); ok {
		return cached
	}
	out := filterItems(s.catalog.Services, category, false)
	s.storeList(ctx, key, out)
	return out
}

// Testimonials lists all testimonials.
func (s *Service) Testimonials(context.Context) []Testimonial {
	out := make([]Testimonial, len(s.catalog.Testimonials))
	copy(out, s.catalog.Testimonials)
	return out
}

// Entry resolves a catalog item into a cart entry. The cart only consumes
// the display fields plus the normalized unit price.
func (s *Service) Entry(id int64) (cart.Entry, bool) {
	item, ok := s.catalog.Lookup(id)
	if !ok {
		return cart.Entry{}, false
	}
	return cart.Entry{
		ID:        item.ID,
		Name:      item.Name,
		PriceText: item.PriceText,
		UnitPrice: item.UnitPrice,
		ImageURL:  item.ImageURL,
		Kind:      item.Kind,
	}, true
}

func (s *Service) cachedList(ctx context.Context, key string) ([]Item, bool) {
	var cached []Item
	ok, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("catalog cache read")
		return nil, false
	}
	return cached, ok
}

func (s *Service) storeList(ctx context.Context, key string, items []Item) {
	if err := s.cache.SetJSON(ctx, key, items); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("catalog cache write")
	}
}

func filterItems(items []Item, category string, featuredOnly bool) []Item {
	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if category != "" && category != CategoryAll && !strings.EqualFold(item.Category, category) {
			continue
		}
		if featuredOnly && !item.Featured {
			continue
		}
		out = append(out, item)
	}
	return out
}

func listCacheKey(collection, category string, featuredOnly bool) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = CategoryAll
	}
	key := "catalog:" + collection + ":" + category
	if featuredOnly {
		key += ":featured"
	}
	return key
}
