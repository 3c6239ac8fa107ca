// Package customization exposes effective-price previews for customization
// requests. Previews reuse the canonical offer parser and calculator, so a
// percent discount is clamped to the same [0,100] range everywhere.
package customization

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pasar/internal/cart"
	"github.com/noah-isme/backend-pasar/internal/pricing"
)

// Preview is the effective-price payload shown alongside a customization
// request.
type Preview struct {
	ProductID      string          `json:"productId"`
	Name           string          `json:"name"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	SpecialOffer   string          `json:"specialOffer,omitempty"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
}

// Service resolves products and prices a single unit through the shared
// pricing pipeline.
type Service struct {
	Products cart.ProductLookup
}

// EffectivePreview returns the single-unit effective price for a product.
// Customized products carry no offer, so their preview is the base price.
func (s *Service) EffectivePreview(ctx context.Context, productID string) (Preview, error) {
	if s == nil || s.Products == nil {
		return Preview{}, errors.New("customization service not configured")
	}
	product, err := s.Products.Lookup(ctx, productID)
	if err != nil {
		return Preview{}, err
	}
	offer := product.OfferText
	if product.IsCustomized {
		offer = ""
	}
	res := pricing.ComputeForDescriptor(product.BasePrice, 1, offer)
	return Preview{
		ProductID:      product.ID,
		Name:           product.Name,
		BasePrice:      product.BasePrice,
		SpecialOffer:   offer,
		EffectivePrice: res.UnitPrice,
	}, nil
}
