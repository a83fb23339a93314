package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := &Handler{Svc: newService(t, nil)}

	r := chi.NewRouter()
	r.Get("/v1/products", h.Products)
	r.Get("/v1/products/featured", h.Featured)
	r.Get("/v1/services", h.Services)
	r.Get("/v1/testimonials", h.Testimonials)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func getItems(t *testing.T, url string) []Item {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []Item `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func TestProductsEndpoint(t *testing.T) {
	srv := newCatalogServer(t)

	items := getItems(t, srv.URL+"/v1/products")
	assert.Len(t, items, 2)
}

func TestProductsEndpointCategoryFilter(t *testing.T) {
	srv := newCatalogServer(t)

	items := getItems(t, srv.URL+"/v1/products?category=monitores")
	require.Len(t, items, 1)
	assert.Equal(t, "Monitor", items[0].Name)
}

func TestProductsEndpointFeaturedFilter(t *testing.T) {
	srv := newCatalogServer(t)

	items := getItems(t, srv.URL+"/v1/products?featured=true")
	require.Len(t, items, 1)
	assert.True(t, items[0].Featured)
}

func TestFeaturedProductsEndpoint(t *testing.T) {
	srv := newCatalogServer(t)

	items := getItems(t, srv.URL+"/v1/products/featured")
	require.Len(t, items, 1)
	assert.True(t, items[0].Featured)
}

func TestServicesEndpoint(t *testing.T) {
	srv := newCatalogServer(t)

	items := getItems(t, srv.URL+"/v1/services")
	require.Len(t, items, 1)
	assert.Equal(t, KindService, items[0].Kind)
	assert.True(t, items[0].Recurring)
}

func TestTestimonialsEndpoint(t *testing.T) {
	srv := newCatalogServer(t)

	resp, err := http.Get(srv.URL + "/v1/testimonials")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []Testimonial `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "María", envelope.Data[0].Name)
}
