package cart

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog map[int64]Entry

func (s stubCatalog) Entry(id int64) (Entry, bool) {
	entry, ok := s[id]
	return entry, ok
}

func newCartServer(t *testing.T) *httptest.Server {
	t.Helper()
	m, _ := newManager(t)
	h := &Handler{
		Manager: m,
		Catalog: stubCatalog{notebook.ID: notebook, monthlySupport.ID: monthlySupport},
	}

	r := chi.NewRouter()
	r.Post("/v1/cart", h.Ensure)
	r.Get("/v1/cart/{id}", h.Get)
	r.Get("/v1/cart/{id}/count", h.Count)
	r.Post("/v1/cart/{id}/items", h.AddItem)
	r.Patch("/v1/cart/{id}/items/{itemId}", h.UpdateQuantity)
	r.Delete("/v1/cart/{id}/items/{itemId}", h.RemoveItem)
	r.Delete("/v1/cart/{id}", h.Clear)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func createCart(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/v1/cart", "")
	require.Equal(t, http.StatusCreated, status)

	var data struct {
		CartID string `json:"cartId"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &data))
	require.NotEmpty(t, data.CartID)
	return data.CartID
}

func TestEnsureCartEndpoint(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)

	// Re-posting the same id keeps the cart instead of minting a new one.
	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/v1/cart", fmt.Sprintf(`{"cartId":%q}`, id))
	require.Equal(t, http.StatusCreated, status)
	var data struct {
		CartID string `json:"cartId"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &data))
	assert.Equal(t, id, data.CartID)
}

func TestAddItemEndpoint(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items",
		fmt.Sprintf(`{"itemId":%d,"quantity":2}`, notebook.ID))
	require.Equal(t, http.StatusOK, status)

	var got Cart
	require.NoError(t, json.Unmarshal(envelope["data"], &got))
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	assert.Equal(t, notebook.PriceText, got.Lines[0].PriceText)
	assert.Equal(t, 2, got.ItemCount)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items",
		fmt.Sprintf(`{"itemId":%d}`, monthlySupport.ID))
	require.Equal(t, http.StatusOK, status)

	var got Cart
	require.NoError(t, json.Unmarshal(envelope["data"], &got))
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 1, got.Lines[0].Quantity)
}

func TestAddItemUnknownCatalogID(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items", `{"itemId":9999}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(envelope["error"]), "NOT_FOUND")
}

func TestGetUnknownCartReturns404(t *testing.T) {
	srv := newCartServer(t)

	status, envelope := doJSON(t, http.MethodGet, srv.URL+"/v1/cart/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(envelope["error"]), "NOT_FOUND")
}

func TestUpdateQuantityEndpoint(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)
	doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items",
		fmt.Sprintf(`{"itemId":%d,"quantity":3}`, notebook.ID))

	status, envelope := doJSON(t, http.MethodPatch,
		fmt.Sprintf("%s/v1/cart/%s/items/%d", srv.URL, id, notebook.ID), `{"quantity":1}`)
	require.Equal(t, http.StatusOK, status)

	var got Cart
	require.NoError(t, json.Unmarshal(envelope["data"], &got))
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 1, got.Lines[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLineOverHTTP(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)
	doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items",
		fmt.Sprintf(`{"itemId":%d}`, monthlySupport.ID))

	status, envelope := doJSON(t, http.MethodPatch,
		fmt.Sprintf("%s/v1/cart/%s/items/%d", srv.URL, id, monthlySupport.ID), `{"quantity":0}`)
	require.Equal(t, http.StatusOK, status)

	var got Cart
	require.NoError(t, json.Unmarshal(envelope["data"], &got))
	assert.Empty(t, got.Lines)
}

func TestRemoveItemEndpoint(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)
	doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items",
		fmt.Sprintf(`{"itemId":%d}`, notebook.ID))

	status, envelope := doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/v1/cart/%s/items/%d", srv.URL, id, notebook.ID), "")
	require.Equal(t, http.StatusOK, status)

	var got Cart
	require.NoError(t, json.Unmarshal(envelope["data"], &got))
	assert.Empty(t, got.Lines)
}

func TestCountEndpoint(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)
	doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items",
		fmt.Sprintf(`{"itemId":%d,"quantity":4}`, monthlySupport.ID))

	status, envelope := doJSON(t, http.MethodGet, srv.URL+"/v1/cart/"+id+"/count", "")
	require.Equal(t, http.StatusOK, status)

	var data struct {
		ItemCount int `json:"itemCount"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &data))
	assert.Equal(t, 4, data.ItemCount)
}

func TestClearEndpoint(t *testing.T) {
	srv := newCartServer(t)
	id := createCart(t, srv)
	doJSON(t, http.MethodPost, srv.URL+"/v1/cart/"+id+"/items",
		fmt.Sprintf(`{"itemId":%d,"quantity":2}`, notebook.ID))

	status, envelope := doJSON(t, http.MethodDelete, srv.URL+"/v1/cart/"+id, "")
	require.Equal(t, http.StatusOK, status)

	var got Cart
	require.NoError(t, json.Unmarshal(envelope["data"], &got))
	assert.Empty(t, got.Lines)
	assert.Equal(t, 0, got.ItemCount)
	assert.True(t, got.Total.IsZero())
}
