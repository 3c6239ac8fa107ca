package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pasar/internal/pricing"
)

// Product is a storefront catalog row.
type Product struct {
	ID           string
	SellerID     string
	Name         string
	BasePrice    decimal.Decimal
	SpecialOffer string
	Stock        int
}

// Store lists catalog rows from persistent storage.
type Store interface {
	ListActiveBySeller(ctx context.Context, sellerID string) ([]Product, error)
}

// ListItem is the storefront listing payload. EffectivePrice is the unit
// price for quantity 1 derived from the product's offer descriptor, so the
// storefront preview and the cart agree on what a single unit costs.
type ListItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	SpecialOffer   string          `json:"specialOffer,omitempty"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	Stock          int             `json:"stock"`
}

// Service assembles storefront listings with offer-aware pricing and a
// read-through cache.
type Service struct {
	Store  Store
	Cache  *Cache
	Logger zerolog.Logger
}

// ListSellerProducts returns the seller's active products with effective
// prices computed through the shared pricing pipeline. Results are cached
// per seller; cache failures degrade to a direct read.
func (s *Service) ListSellerProducts(ctx context.Context, sellerID string) ([]ListItem, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("catalog service not configured")
	}
	cacheKey := fmt.Sprintf("catalog:seller:%s:products", sellerID)

	var cached []ListItem
	if hit, err := s.Cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		s.Logger.Warn().Err(err).Str("seller_id", sellerID).Msg("catalog cache read failed")
	} else if hit {
		return cached, nil
	}

	products, err := s.Store.ListActiveBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	items := make([]ListItem, 0, len(products))
	for _, p := range products {
		preview := pricing.ComputeForDescriptor(p.BasePrice, 1, p.SpecialOffer)
		items = append(items, ListItem{
			ID:             p.ID,
			Name:           p.Name,
			BasePrice:      p.BasePrice,
			SpecialOffer:   p.SpecialOffer,
			EffectivePrice: preview.UnitPrice,
			Stock:          p.Stock,
		})
	}
	if err := s.Cache.SetJSON(ctx, cacheKey, items); err != nil {
		s.Logger.Warn().Err(err).Str("seller_id", sellerID).Msg("catalog cache write failed")
	}
	return items, nil
}
