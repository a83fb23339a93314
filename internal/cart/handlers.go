package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/techsolutions/storefront/internal/common"
)

// EntrySource resolves catalog ids into cart entries. The catalog service
// implements it; the cart never trusts prices supplied by the client.
type EntrySource interface {
	Entry(id int64) (Entry, bool)
}

// Handler wires cart stores to HTTP.
type Handler struct {
	Manager *Manager
	Catalog EntrySource
}

// Ensure returns a store for the supplied cart id, minting one when absent.
func (h *Handler) Ensure(w http.ResponseWriter, r *http.Request) {
	if h.Manager == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart manager not configured", nil)
		return
	}
	var payload struct {
		CartID string `json:"cartId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)
	store, id, _ := h.Manager.Ensure(r.Context(), payload.CartID)
	common.JSONData(w, http.StatusCreated, map[string]any{
		"cartId": id,
		"cart":   store.Snapshot(),
	})
}

// Get returns the full cart snapshot.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}
	common.JSONData(w, http.StatusOK, store.Snapshot())
}

// Count returns the badge item count only.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}
	common.JSONData(w, http.StatusOK, map[string]int{"itemCount": store.Snapshot().ItemCount})
}

// AddItem resolves the catalog entry and merges it into the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.ensureForWrite(w, r)
	if !ok {
		return
	}
	var payload struct {
		ItemID   int64 `json:"itemId"`
		Quantity int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	entry, found := h.Catalog.Entry(payload.ItemID)
	if !found {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "catalog item not found", nil)
		return
	}
	qty := payload.Quantity
	if qty == 0 {
		qty = 1
	}
	common.JSONData(w, http.StatusOK, store.AddItem(r.Context(), entry, qty))
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}
	itemID, err := itemIDParam(r)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	common.JSONData(w, http.StatusOK, store.UpdateQuantity(r.Context(), itemID, payload.Quantity))
}

// RemoveItem deletes a line. Unknown lines leave the cart unchanged.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}
	itemID, err := itemIDParam(r)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	common.JSONData(w, http.StatusOK, store.RemoveItem(r.Context(), itemID))
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}
	common.JSONData(w, http.StatusOK, store.Clear(r.Context()))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	if h.Manager == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart manager not configured", nil)
		return nil, false
	}
	id := chi.URLParam(r, "id")
	store, found := h.Manager.Lookup(r.Context(), id)
	if !found {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
		return nil, false
	}
	return store, true
}

func (h *Handler) ensureForWrite(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	if h.Manager == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart manager not configured", nil)
		return nil, false
	}
	store, _, _ := h.Manager.Ensure(r.Context(), chi.URLParam(r, "id"))
	return store, true
}

func itemIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
}
