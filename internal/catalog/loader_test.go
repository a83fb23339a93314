package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T, products, services, testimonials string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProductsFile), []byte(products), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ServicesFile), []byte(services), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TestimonialsFile), []byte(testimonials), 0o644))
	return dir
}

const (
	validProducts = `{"products":[
		{"id":1,"name":"Notebook","category":"notebooks","priceText":"$1.299.990","rating":4.8,"featured":true},
		{"id":2,"name":"Monitor","category":"monitores","priceText":"$449.990","rating":4.6}
	]}`
	validServices = `{"services":[
		{"id":101,"name":"Soporte","category":"soporte","priceText":"$199/mes","rating":4.9}
	]}`
	validTestimonials = `{"testimonials":[
		{"id":1,"name":"María","company":"Andina","text":"Excelente","rating":5}
	]}`
)

func TestLoadNormalizesPrices(t *testing.T) {
	dir := writeFixtures(t, validProducts, validServices, validTestimonials)

	c, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, c.Products, 2)
	assert.Equal(t, int64(1299990), int64(c.Products[0].UnitPrice))
	assert.Equal(t, KindProduct, c.Products[0].Kind)
	assert.False(t, c.Products[0].Recurring)

	require.Len(t, c.Services, 1)
	assert.Equal(t, int64(199), int64(c.Services[0].UnitPrice))
	assert.Equal(t, KindService, c.Services[0].Kind)
	assert.True(t, c.Services[0].Recurring)
}

func TestLoadFailsOnMalformedPrice(t *testing.T) {
	dir := writeFixtures(t,
		`{"products":[{"id":1,"name":"Roto","category":"x","priceText":"precio a convenir","rating":4}]}`,
		validServices, validTestimonials)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Roto")
}

func TestLoadFailsOnMalformedOriginalPrice(t *testing.T) {
	dir := writeFixtures(t,
		`{"products":[{"id":1,"name":"Oferta","category":"x","priceText":"$100","originalPriceText":"n/a","rating":4}]}`,
		validServices, validTestimonials)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "original price")
}

func TestLoadFailsOnDuplicateIDAcrossCollections(t *testing.T) {
	dir := writeFixtures(t,
		`{"products":[{"id":5,"name":"Producto","category":"x","priceText":"$100","rating":4}]}`,
		`{"services":[{"id":5,"name":"Servicio","category":"y","priceText":"$200","rating":4}]}`,
		validTestimonials)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id 5")
}

func TestLoadFailsOnMissingName(t *testing.T) {
	dir := writeFixtures(t,
		`{"products":[{"id":1,"name":"  ","category":"x","priceText":"$100","rating":4}]}`,
		validServices, validTestimonials)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
}

func TestLookupSpansCollections(t *testing.T) {
	dir := writeFixtures(t, validProducts, validServices, validTestimonials)
	c, err := Load(dir)
	require.NoError(t, err)

	item, ok := c.Lookup(101)
	require.True(t, ok)
	assert.Equal(t, "Soporte", item.Name)

	_, ok = c.Lookup(9999)
	assert.False(t, ok)
}

func TestShippedDataFilesLoad(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "data"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.Products)
	assert.NotEmpty(t, c.Services)
	assert.NotEmpty(t, c.Testimonials)
}
