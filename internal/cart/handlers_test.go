package cart_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pasar/internal/cart"
)

const handlerProduct = "3f1c2b6a-8d4e-4f0b-9c7a-1e2d3c4b5a69"

func newRouter(h *cart.Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/v1/carts/{customerID}", func(c chi.Router) {
		c.Get("/items", h.ListItems)
		c.Get("/summary", h.Summary)
		c.Post("/items", h.AddItem)
		c.Patch("/items/{productID}", h.UpdateQuantity)
		c.Delete("/items/{productID}", h.RemoveItem)
		c.Delete("/", h.Clear)
	})
	return r
}

func TestHandlerAddItemRoundTrip(t *testing.T) {
	svc, _, _ := newService(cart.ProductInfo{
		ID: handlerProduct, Name: "Organic Honey", BasePrice: money("10.00"), OfferText: "Buy 1 Get 1 Free",
	})
	router := newRouter(cart.NewHandler(svc))

	body := `{"productId":"` + handlerProduct + `","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/carts/"+customer+"/items", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Data struct {
			Quantity        int    `json:"quantity"`
			CachedUnitPrice string `json:"cachedUnitPrice"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Data.Quantity)
	require.Equal(t, "5", resp.Data.CachedUnitPrice)
}

func TestHandlerAddItemRejectsBadPayload(t *testing.T) {
	svc, _, _ := newService()
	router := newRouter(cart.NewHandler(svc))

	cases := map[string]string{
		"not json":         `{"productId":`,
		"missing quantity": `{"productId":"` + handlerProduct + `"}`,
		"bad product id":   `{"productId":"p1","quantity":1}`,
		"bad price":        `{"productId":"` + handlerProduct + `","quantity":1,"price":"abc"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/carts/"+customer+"/items", strings.NewReader(body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Contains(t, rr.Body.String(), "BAD_REQUEST")
		})
	}
}

func TestHandlerBannedSellerIsForbidden(t *testing.T) {
	svc, _, _ := newService(cart.ProductInfo{
		ID: handlerProduct, BasePrice: money("10.00"), SellerBanned: true,
	})
	router := newRouter(cart.NewHandler(svc))

	body := `{"productId":"` + handlerProduct + `","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/carts/"+customer+"/items", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Body.String(), "SELLER_DISABLED")
}

func TestHandlerUpdateRemoveAndSummary(t *testing.T) {
	svc, _, _ := newService(cart.ProductInfo{
		ID: handlerProduct, Name: "Kopi Robusta", BasePrice: money("20.00"), OfferText: "50% Off",
	})
	router := newRouter(cart.NewHandler(svc))

	add := httptest.NewRequest(http.MethodPost, "/v1/carts/"+customer+"/items",
		strings.NewReader(`{"productId":"`+handlerProduct+`","quantity":2}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, add)
	require.Equal(t, http.StatusOK, rr.Code)

	patch := httptest.NewRequest(http.MethodPatch, "/v1/carts/"+customer+"/items/"+handlerProduct,
		strings.NewReader(`{"quantity":3}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, patch)
	require.Equal(t, http.StatusOK, rr.Code)

	summary := httptest.NewRequest(http.MethodGet, "/v1/carts/"+customer+"/summary", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, summary)
	require.Equal(t, http.StatusOK, rr.Code)
	var sum struct {
		Data struct {
			TotalLineCount int    `json:"totalItems"`
			TotalQuantity  int    `json:"totalQuantity"`
			TotalPrice     string `json:"totalPrice"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sum))
	require.Equal(t, 1, sum.Data.TotalLineCount)
	require.Equal(t, 3, sum.Data.TotalQuantity)
	require.Equal(t, "30", sum.Data.TotalPrice)

	del := httptest.NewRequest(http.MethodDelete, "/v1/carts/"+customer+"/items/"+handlerProduct, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, del)
	require.Equal(t, http.StatusOK, rr.Code)

	missing := httptest.NewRequest(http.MethodDelete, "/v1/carts/"+customer+"/items/"+handlerProduct, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, missing)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
