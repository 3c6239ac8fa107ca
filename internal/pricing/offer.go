package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// OfferKind discriminates the recognised offer variants.
type OfferKind int

const (
	// OfferNone means no promotion applies.
	OfferNone OfferKind = iota
	// OfferPercent is a uniform percentage discount, e.g. "10% Off".
	OfferPercent
	// OfferBuyXGetY is a promotional bundle, e.g. "Buy 2 Get 1 Free".
	OfferBuyXGetY
)

// Offer is the typed form of a seller-entered offer descriptor.
// The zero value is OfferNone.
type Offer struct {
	Kind    OfferKind
	Percent int // 0..100, set for OfferPercent
	Buy     int // >=1, set for OfferBuyXGetY
	Free    int // >=1, set for OfferBuyXGetY
}

var (
	percentPattern = regexp.MustCompile(`(?i)^(\d{1,3})\s*%\s*off$`)
	bundlePattern  = regexp.MustCompile(`(?i)^buy\s*(\d+)\s*get\s*(\d+)\s*free$`)
)

// ParseOffer converts a raw offer descriptor into an Offer. Parsing is total:
// empty, unrecognised, or out-of-range input maps to OfferNone, never an error.
func ParseOffer(raw string) Offer {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Offer{}
	}

	if m := percentPattern.FindStringSubmatch(trimmed); m != nil {
		pct, err := strconv.Atoi(m[1])
		if err != nil {
			return Offer{}
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return Offer{Kind: OfferPercent, Percent: pct}
	}

	if m := bundlePattern.FindStringSubmatch(trimmed); m != nil {
		buy, errBuy := strconv.Atoi(m[1])
		free, errFree := strconv.Atoi(m[2])
		if errBuy != nil || errFree != nil {
			return Offer{}
		}
		if buy < 1 {
			buy = 1
		}
		if free < 1 {
			free = 1
		}
		return Offer{Kind: OfferBuyXGetY, Buy: buy, Free: free}
	}

	return Offer{}
}

// AutoAdjustQuantity bumps a requested quantity to include pending free units
// when it lands exactly on the paid-unit boundary of an incomplete bundle
// group. For "Buy 1 Get 1 Free" a request for 1 becomes 2; mid-group and
// already-complete quantities are returned unchanged. Non-bundle offers never
// adjust.
func AutoAdjustQuantity(quantity int, offer Offer) int {
	if quantity <= 0 {
		return 0
	}
	if offer.Kind != OfferBuyXGetY {
		return quantity
	}
	group := offer.Buy + offer.Free
	if group < 1 {
		group = 1
	}
	if quantity%group == offer.Buy {
		return quantity + offer.Free
	}
	return quantity
}
