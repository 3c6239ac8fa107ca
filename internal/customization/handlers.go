package customization

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-pasar/internal/cart"
	"github.com/noah-isme/backend-pasar/internal/common"
)

// Handler wires customization previews to HTTP.
type Handler struct {
	Svc *Service
}

// EffectivePrice handles GET /v1/products/{productID}/effective-price.
func (h *Handler) EffectivePrice(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customization service not configured", nil)
		return
	}
	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	preview, err := h.Svc.EffectivePreview(r.Context(), productID)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to compute effective price", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": preview})
}
