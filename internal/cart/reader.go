package cart

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pasar/internal/pricing"
)

// DisplayLine is a cart line enriched with pricing recomputed at read time
// from the product's current base price and offer. The persisted cached unit
// price never feeds into these fields.
type DisplayLine struct {
	ProductID          string          `json:"productId"`
	Name               string          `json:"name"`
	SellerName         string          `json:"sellerName,omitempty"`
	IsCustomized       bool            `json:"isCustomized"`
	Quantity           int             `json:"quantity"`
	BasePrice          decimal.Decimal `json:"basePrice"`
	OfferText          string          `json:"offer,omitempty"`
	EffectiveUnitPrice decimal.Decimal `json:"effectiveUnitPrice"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
	PaidUnits          int             `json:"paidUnits"`
	FreeUnits          int             `json:"freeUnits"`
	AddedAt            time.Time       `json:"addedAt"`
}

// Summary aggregates cart totals, fully derived from live pricing.
type Summary struct {
	TotalLineCount int             `json:"totalItems"`
	TotalQuantity  int             `json:"totalQuantity"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
}

// ListItems returns the customer's cart lines, most recently added first,
// each repriced against the live product. Lines whose product no longer
// exists are skipped.
func (s *Service) ListItems(ctx context.Context, customerID string) ([]DisplayLine, error) {
	if s == nil || s.Store == nil || s.Products == nil {
		return nil, errors.New("cart service not configured")
	}
	lines, err := s.Store.ListLines(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]DisplayLine, 0, len(lines))
	for _, line := range lines {
		product, err := s.Products.Lookup(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		res := s.priceLine(product, line.Quantity)
		out = append(out, DisplayLine{
			ProductID:          line.ProductID,
			Name:               product.Name,
			SellerName:         product.SellerName,
			IsCustomized:       product.IsCustomized,
			Quantity:           line.Quantity,
			BasePrice:          product.BasePrice,
			OfferText:          product.OfferText,
			EffectiveUnitPrice: res.UnitPrice,
			LineTotal:          res.LineTotal,
			PaidUnits:          res.PaidUnits,
			FreeUnits:          res.FreeUnits,
			AddedAt:            line.AddedAt,
		})
	}
	return out, nil
}

// Summarize computes cart totals from live line pricing. The result is
// independent of every cached unit price.
func (s *Service) Summarize(ctx context.Context, customerID string) (Summary, error) {
	if s == nil || s.Store == nil || s.Products == nil {
		return Summary{}, errors.New("cart service not configured")
	}
	lines, err := s.Store.ListLines(ctx, customerID)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{TotalPrice: decimal.Zero}
	for _, line := range lines {
		product, err := s.Products.Lookup(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return Summary{}, err
		}
		res := s.priceLine(product, line.Quantity)
		summary.TotalLineCount++
		summary.TotalQuantity += line.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(res.LineTotal)
	}
	summary.TotalPrice = summary.TotalPrice.Round(2)
	return summary, nil
}

func (s *Service) priceLine(product ProductInfo, quantity int) pricing.Result {
	if product.IsCustomized {
		return pricing.Compute(product.BasePrice, quantity, pricing.Offer{})
	}
	return pricing.ComputeForDescriptor(product.BasePrice, quantity, product.OfferText)
}
