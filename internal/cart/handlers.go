package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pasar/internal/common"
	"github.com/noah-isme/backend-pasar/internal/obs"
)

// Handler wires the cart service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// NewHandler constructs a cart handler with payload validation enabled.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Validate: validator.New()}
}

type addItemPayload struct {
	ProductID string  `json:"productId" validate:"required,uuid4"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     *string `json:"price,omitempty" validate:"omitempty"`
}

type updateQuantityPayload struct {
	Quantity int `json:"quantity"`
}

// AddItem handles POST /v1/carts/{customerID}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	var payload addItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json payload", nil)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid add-to-cart payload", err.Error())
		return
	}

	var explicitPrice *decimal.Decimal
	if payload.Price != nil && strings.TrimSpace(*payload.Price) != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(*payload.Price))
		if err != nil || price.IsNegative() {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid price override", nil)
			return
		}
		explicitPrice = &price
	}

	result, err := h.Svc.AddItem(r.Context(), customerID, payload.ProductID, payload.Quantity, explicitPrice)
	if err != nil {
		countMutation("add", "error")
		h.writeError(w, err)
		return
	}
	countMutation("add", "ok")
	if result.AdjustedQuantity > payload.Quantity && obs.OfferAutoAdjustTotal != nil {
		obs.OfferAutoAdjustTotal.Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"productId":       result.Line.ProductID,
			"quantity":        result.Line.Quantity,
			"cachedUnitPrice": result.Line.CachedUnitPrice,
		},
	})
}

// UpdateQuantity handles PATCH /v1/carts/{customerID}/items/{productID}.
// A quantity of zero or less removes the line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	var payload updateQuantityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json payload", nil)
		return
	}
	if err := h.Svc.UpdateQuantity(r.Context(), customerID, productID, payload.Quantity); err != nil {
		countMutation("update", "error")
		h.writeError(w, err)
		return
	}
	countMutation("update", "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"updated": true}})
}

// RemoveItem handles DELETE /v1/carts/{customerID}/items/{productID}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if err := h.Svc.RemoveItem(r.Context(), customerID, productID); err != nil {
		countMutation("remove", "error")
		h.writeError(w, err)
		return
	}
	countMutation("remove", "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"removed": true}})
}

// Clear handles DELETE /v1/carts/{customerID}.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	if err := h.Svc.Clear(r.Context(), customerID); err != nil {
		countMutation("clear", "error")
		h.writeError(w, err)
		return
	}
	countMutation("clear", "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"cleared": true}})
}

// ListItems handles GET /v1/carts/{customerID}/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	items, err := h.Svc.ListItems(r.Context(), customerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	countRead("list")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"items": items}})
}

// Summary handles GET /v1/carts/{customerID}/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	summary, err := h.Svc.Summarize(r.Context(), customerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	countRead("summary")
	common.JSON(w, http.StatusOK, map[string]any{"data": summary})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSellerDisabled):
		common.JSONError(w, http.StatusForbidden, "SELLER_DISABLED", ErrSellerDisabled.Error(), nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to process cart request", nil)
	}
}

func countMutation(op, result string) {
	if obs.CartMutationsTotal != nil {
		obs.CartMutationsTotal.WithLabelValues(op, result).Inc()
	}
}

func countRead(op string) {
	if obs.CartReadsTotal != nil {
		obs.CartReadsTotal.WithLabelValues(op).Inc()
	}
}
