package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pasar/internal/catalog"
)

type stubStore struct {
	products  []catalog.Product
	listCalls int
}

func (s *stubStore) ListActiveBySeller(_ context.Context, _ string) ([]catalog.Product, error) {
	s.listCalls++
	return s.products, nil
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestListSellerProductsEffectivePrices(t *testing.T) {
	store := &stubStore{products: []catalog.Product{
		{ID: "p1", Name: "Arabica Beans", BasePrice: money("50.00"), SpecialOffer: "20% Off", Stock: 12},
		{ID: "p2", Name: "Robusta Beans", BasePrice: money("10.00"), SpecialOffer: "Buy 1 Get 1 Free", Stock: 3},
		{ID: "p3", Name: "Liberica Beans", BasePrice: money("9.99"), Stock: 7},
	}}
	svc := &catalog.Service{Store: store, Logger: zerolog.Nop()}

	items, err := svc.ListSellerProducts(context.Background(), "seller-1")
	require.NoError(t, err)
	require.Len(t, items, 3)

	// 20% off a single unit
	require.True(t, items[0].EffectivePrice.Equal(money("40.00")), "got %s", items[0].EffectivePrice)
	// preview quantity 1 of B1G1 prices the completed bundle: 10.00 across 2 units
	require.True(t, items[1].EffectivePrice.Equal(money("5.00")), "got %s", items[1].EffectivePrice)
	// no offer: base price
	require.True(t, items[2].EffectivePrice.Equal(money("9.99")), "got %s", items[2].EffectivePrice)
}

func TestListSellerProductsCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := &stubStore{products: []catalog.Product{
		{ID: "p1", Name: "Arabica Beans", BasePrice: money("50.00")},
	}}
	svc := &catalog.Service{Store: store, Cache: catalog.NewCache(rdb, time.Minute), Logger: zerolog.Nop()}

	first, err := svc.ListSellerProducts(context.Background(), "seller-1")
	require.NoError(t, err)
	second, err := svc.ListSellerProducts(context.Background(), "seller-1")
	require.NoError(t, err)

	require.Equal(t, 1, store.listCalls, "second read must come from cache")
	require.Len(t, second, len(first))
	require.True(t, first[0].EffectivePrice.Equal(second[0].EffectivePrice))
}
