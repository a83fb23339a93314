package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/techsolutions/storefront/internal/common"
)

// Handler wires the checkout simulation to HTTP.
type Handler struct {
	Svc *Service
}

// Checkout processes a submitted checkout form.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var payload Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	out, err := h.Svc.Process(r.Context(), payload)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, out)
}
