package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pasar/internal/common"
	"github.com/noah-isme/backend-pasar/internal/pricing"
)

// Handler exposes storefront listing and standalone pricing previews.
type Handler struct {
	Svc *Service
}

// ListSellerProducts handles GET /v1/sellers/{sellerID}/products.
func (h *Handler) ListSellerProducts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	sellerID := strings.TrimSpace(chi.URLParam(r, "sellerID"))
	items, err := h.Svc.ListSellerProducts(r.Context(), sellerID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list products", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"products": items}})
}

// PricingPreview handles GET /v1/pricing/preview?basePrice=&quantity=&offer=.
// It exposes the pure pricing pipeline for storefront and client previews
// without touching any cart state.
func (h *Handler) PricingPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	basePrice, err := decimal.NewFromString(strings.TrimSpace(q.Get("basePrice")))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid basePrice", nil)
		return
	}
	quantity := 1
	if raw := strings.TrimSpace(q.Get("quantity")); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid quantity", nil)
			return
		}
	}
	res := pricing.ComputeForDescriptor(basePrice, quantity, q.Get("offer"))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"unitPrice":        res.UnitPrice,
			"lineTotal":        res.LineTotal,
			"paidUnits":        res.PaidUnits,
			"freeUnits":        res.FreeUnits,
			"adjustedQuantity": res.AdjustedQty,
		},
	})
}
