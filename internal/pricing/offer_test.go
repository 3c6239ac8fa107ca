package pricing_test

import (
	"strings"
	"testing"

	"github.com/noah-isme/backend-pasar/internal/pricing"
)

func TestParseOfferPercent(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"10% Off", 10},
		{"10 % off", 10},
		{"  25%OFF  ", 25},
		{"0% Off", 0},
		{"100% Off", 100},
		{"150% Off", 100}, // clamped, not rejected
		{"999% off", 100},
	}
	for _, tc := range cases {
		got := pricing.ParseOffer(tc.raw)
		if got.Kind != pricing.OfferPercent {
			t.Fatalf("%q: expected percent offer, got kind %d", tc.raw, got.Kind)
		}
		if got.Percent != tc.want {
			t.Fatalf("%q: expected percent %d, got %d", tc.raw, tc.want, got.Percent)
		}
	}
}

func TestParseOfferBundle(t *testing.T) {
	cases := []struct {
		raw       string
		buy, free int
	}{
		{"Buy 1 Get 1 Free", 1, 1},
		{"buy 2 get 1 free", 2, 1},
		{"Buy3Get2Free", 3, 2},
		{"Buy 0 Get 0 Free", 1, 1}, // floors at 1
	}
	for _, tc := range cases {
		got := pricing.ParseOffer(tc.raw)
		if got.Kind != pricing.OfferBuyXGetY {
			t.Fatalf("%q: expected bundle offer, got kind %d", tc.raw, got.Kind)
		}
		if got.Buy != tc.buy || got.Free != tc.free {
			t.Fatalf("%q: expected buy=%d free=%d, got buy=%d free=%d", tc.raw, tc.buy, tc.free, got.Buy, got.Free)
		}
	}
}

func TestParseOfferTotality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Flash Sale",
		"% Off",
		"Buy Get Free",
		"Buy -1 Get 2 Free",
		"10% Off and more",
		"1000% Off", // four digits, pattern does not match
		"Beli 2 Gratis 1",
		"10%% Off",
		"ümläut ☃ offer",
		strings.Repeat("Buy 1 Get 1 Free ", 10000),
	}
	for _, raw := range inputs {
		got := pricing.ParseOffer(raw)
		if got.Kind != pricing.OfferNone {
			t.Fatalf("%q: expected no offer, got kind %d", raw, got.Kind)
		}
	}
}

func TestAutoAdjustQuantity(t *testing.T) {
	b1g1 := pricing.Offer{Kind: pricing.OfferBuyXGetY, Buy: 1, Free: 1}
	b2g1 := pricing.Offer{Kind: pricing.OfferBuyXGetY, Buy: 2, Free: 1}
	b3g2 := pricing.Offer{Kind: pricing.OfferBuyXGetY, Buy: 3, Free: 2}
	pct := pricing.Offer{Kind: pricing.OfferPercent, Percent: 10}

	cases := []struct {
		name  string
		qty   int
		offer pricing.Offer
		want  int
	}{
		{"b1g1 boundary", 1, b1g1, 2},
		{"b1g1 complete group", 2, b1g1, 2},
		{"b1g1 second boundary", 3, b1g1, 4},
		{"b2g1 boundary", 2, b2g1, 3},
		{"b2g1 mid group", 1, b2g1, 1},
		{"b2g1 complete group", 3, b2g1, 3},
		{"b2g1 stacked boundary", 5, b2g1, 6},
		{"b3g2 boundary", 3, b3g2, 5},
		{"b3g2 mid group", 4, b3g2, 4},
		{"percent never adjusts", 1, pct, 1},
		{"no offer never adjusts", 7, pricing.Offer{}, 7},
		{"zero quantity", 0, b1g1, 0},
		{"negative quantity", -3, b1g1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pricing.AutoAdjustQuantity(tc.qty, tc.offer); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
