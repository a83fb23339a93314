package catalog

import (
	"net/http"
	"strings"

	"github.com/techsolutions/storefront/internal/common"
)

// Handler wires the catalog service to HTTP.
type Handler struct {
	Svc *Service
}

// Products lists products. Supports ?category= and ?featured=true.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	q := r.URL.Query()
	featured := strings.EqualFold(q.Get("featured"), "true")
	items := h.Svc.Products(r.Context(), q.Get("category"), featured)
	common.JSONData(w, http.StatusOK, items)
}

// Featured lists featured products only.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	items := h.Svc.Products(r.Context(), CategoryAll, true)
	common.JSONData(w, http.StatusOK, items)
}

// Services lists services. Supports ?category=.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	items := h.Svc.Services(r.Context(), r.URL.Query().Get("category"))
	common.JSONData(w, http.StatusOK, items)
}

// Testimonials lists all testimonials.
func (h *Handler) Testimonials(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	common.JSONData(w, http.StatusOK, h.Svc.Testimonials(r.Context()))
}
