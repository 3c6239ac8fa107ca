package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pasar/internal/pricing"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeNoOffer(t *testing.T) {
	res := pricing.ComputeForDescriptor(money("9.99"), 4, "")
	require.True(t, res.UnitPrice.Equal(money("9.99")), "unit price %s", res.UnitPrice)
	require.True(t, res.LineTotal.Equal(money("39.96")), "line total %s", res.LineTotal)
	require.Equal(t, 4, res.PaidUnits)
	require.Equal(t, 0, res.FreeUnits)
	require.Equal(t, 4, res.AdjustedQty)
}

func TestComputePercent(t *testing.T) {
	res := pricing.ComputeForDescriptor(money("50.00"), 3, "20% Off")
	require.True(t, res.UnitPrice.Equal(money("40.00")), "unit price %s", res.UnitPrice)
	require.True(t, res.LineTotal.Equal(money("120.00")), "line total %s", res.LineTotal)
	require.Equal(t, 3, res.PaidUnits)
	require.Equal(t, 0, res.FreeUnits)
}

func TestComputePercentRoundsUnitFirst(t *testing.T) {
	// 33.33 * 0.85 = 28.3305 -> 28.33; 28.33 * 3 = 84.99, not
	// round(33.33*0.85*3) = 85.00. The unit price is rounded before the
	// multiplication.
	res := pricing.ComputeForDescriptor(money("33.33"), 3, "15% Off")
	require.True(t, res.UnitPrice.Equal(money("28.33")), "unit price %s", res.UnitPrice)
	require.True(t, res.LineTotal.Equal(money("84.99")), "line total %s", res.LineTotal)
}

func TestComputeBundleBoundary(t *testing.T) {
	res := pricing.ComputeForDescriptor(money("10.00"), 1, "Buy 1 Get 1 Free")
	require.Equal(t, 2, res.AdjustedQty)
	require.Equal(t, 1, res.PaidUnits)
	require.Equal(t, 1, res.FreeUnits)
	require.True(t, res.UnitPrice.Equal(money("5.00")), "unit price %s", res.UnitPrice)
	require.True(t, res.LineTotal.Equal(money("10.00")), "line total %s", res.LineTotal)
}

func TestComputeBundleNonBoundary(t *testing.T) {
	// group=3, 3 mod 3 = 0 != buy(2): no bump; one full group.
	res := pricing.ComputeForDescriptor(money("10.00"), 3, "Buy 2 Get 1 Free")
	require.Equal(t, 3, res.AdjustedQty)
	require.Equal(t, 2, res.PaidUnits)
	require.Equal(t, 1, res.FreeUnits)
	require.True(t, res.LineTotal.Equal(money("20.00")), "line total %s", res.LineTotal)
}

func TestComputeBundleMidGroup(t *testing.T) {
	// qty 4 of B2G1: one full group plus remainder 1, all-paid remainder.
	res := pricing.ComputeForDescriptor(money("12.00"), 4, "Buy 2 Get 1 Free")
	require.Equal(t, 4, res.AdjustedQty)
	require.Equal(t, 3, res.PaidUnits)
	require.Equal(t, 1, res.FreeUnits)
	require.True(t, res.LineTotal.Equal(money("36.00")), "line total %s", res.LineTotal)
	require.True(t, res.UnitPrice.Equal(money("9.00")), "unit price %s", res.UnitPrice)
}

func TestComputeBundleBlendedRounding(t *testing.T) {
	// 1 paid unit at 9.99 across 2 units: 4.995 rounds half-up to 5.00.
	res := pricing.ComputeForDescriptor(money("9.99"), 1, "Buy 1 Get 1 Free")
	require.True(t, res.UnitPrice.Equal(money("5.00")), "unit price %s", res.UnitPrice)
	require.True(t, res.LineTotal.Equal(money("9.99")), "line total %s", res.LineTotal)
}

func TestComputeDegenerateInputs(t *testing.T) {
	res := pricing.ComputeForDescriptor(money("5.00"), 0, "10% Off")
	require.True(t, res.LineTotal.IsZero(), "line total %s", res.LineTotal)
	require.Equal(t, 0, res.PaidUnits)
	require.Equal(t, 0, res.FreeUnits)
	require.Equal(t, 0, res.AdjustedQty)
	require.True(t, res.UnitPrice.Equal(money("5.00")))

	res = pricing.ComputeForDescriptor(money("-3.00"), 2, "")
	require.True(t, res.UnitPrice.IsZero(), "unit price %s", res.UnitPrice)
	require.True(t, res.LineTotal.IsZero())

	res = pricing.ComputeForDescriptor(money("5.00"), -1, "Buy 1 Get 1 Free")
	require.Equal(t, 0, res.AdjustedQty)
	require.True(t, res.LineTotal.IsZero())
}

func TestComputePaidPlusFreeEqualsAdjusted(t *testing.T) {
	offers := []string{"", "10% Off", "Buy 1 Get 1 Free", "Buy 2 Get 1 Free", "Buy 3 Get 2 Free"}
	for _, offer := range offers {
		for qty := 1; qty <= 25; qty++ {
			res := pricing.ComputeForDescriptor(money("7.35"), qty, offer)
			if res.PaidUnits+res.FreeUnits != res.AdjustedQty {
				t.Fatalf("offer %q qty %d: paid %d + free %d != adjusted %d",
					offer, qty, res.PaidUnits, res.FreeUnits, res.AdjustedQty)
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	a := pricing.ComputeForDescriptor(money("19.99"), 5, "Buy 2 Get 1 Free")
	b := pricing.ComputeForDescriptor(money("19.99"), 5, "Buy 2 Get 1 Free")
	require.True(t, a.UnitPrice.Equal(b.UnitPrice))
	require.True(t, a.LineTotal.Equal(b.LineTotal))
	require.Equal(t, a, b)
}
