package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pasar/internal/pricing"
)

// ErrNotFound indicates the requested product or cart line could not be located.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// ErrSellerDisabled rejects cart writes for products of banned sellers.
var ErrSellerDisabled = errors.New("this seller is currently disabled, contact the seller for further information")

// Service owns the cart write path (reconciliation of adds and quantity
// edits) and the read path (live repricing of stored lines). Both paths run
// the same parse -> adjust -> compute pipeline so stored and displayed values
// always agree.
type Service struct {
	Store    Store
	Products ProductLookup
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AddResult reports the upserted line and the quantity the customer ends up
// with after any promotional auto-adjustment.
type AddResult struct {
	Line             Line
	AdjustedQuantity int
}

// AddItem merges an add-to-cart request into the customer's cart. For a new
// line the requested quantity is auto-adjusted against the product's offer
// and the unit price is derived from the adjusted quantity. For an existing
// line the unit price is recomputed from the full merged quantity rather than
// accumulated incrementally, so rounding never drifts. Customized products
// bypass offers entirely. explicitPrice, when provided, overrides the derived
// unit price for the initial insert.
func (s *Service) AddItem(ctx context.Context, customerID, productID string, quantity int, explicitPrice *decimal.Decimal) (AddResult, error) {
	if s == nil || s.Store == nil || s.Products == nil {
		return AddResult{}, errors.New("cart service not configured")
	}
	if customerID == "" || productID == "" {
		return AddResult{}, fmt.Errorf("customer and product ids required: %w", ErrInvalidInput)
	}
	if quantity <= 0 {
		return AddResult{}, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
	}

	product, err := s.Products.Lookup(ctx, productID)
	if err != nil {
		return AddResult{}, err
	}
	if product.SellerBanned {
		return AddResult{}, ErrSellerDisabled
	}

	offer := pricing.Offer{}
	effectiveQty := quantity
	if !product.IsCustomized {
		offer = pricing.ParseOffer(product.OfferText)
		effectiveQty = pricing.AutoAdjustQuantity(quantity, offer)
	}

	unitPrice := product.BasePrice
	switch {
	case explicitPrice != nil:
		unitPrice = *explicitPrice
	case !product.IsCustomized:
		unitPrice = pricing.Compute(product.BasePrice, effectiveQty, offer).UnitPrice
	}

	now := s.now()
	line, err := s.Store.MergeLine(ctx, customerID, productID, func(existing *Line) (Line, error) {
		if existing == nil {
			return Line{
				CustomerID:      customerID,
				ProductID:       productID,
				Quantity:        effectiveQty,
				CachedUnitPrice: unitPrice,
				AddedAt:         now,
				UpdatedAt:       now,
			}, nil
		}
		merged := *existing
		merged.Quantity = existing.Quantity + quantity
		merged.CachedUnitPrice = unitPrice
		if !product.IsCustomized {
			merged.CachedUnitPrice = pricing.Compute(product.BasePrice, merged.Quantity, offer).UnitPrice
		}
		merged.UpdatedAt = now
		return merged, nil
	})
	if err != nil {
		return AddResult{}, err
	}
	return AddResult{Line: line, AdjustedQuantity: line.Quantity}, nil
}

// UpdateQuantity sets an absolute quantity for an existing line. Setting zero
// or less removes the line. The new quantity is auto-adjusted against the
// product's live offer and the cached unit price is refreshed alongside it;
// read paths still reprice from scratch regardless.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, customerID, productID)
	}

	finalQty := quantity
	var repriced *decimal.Decimal
	product, err := s.Products.Lookup(ctx, productID)
	switch {
	case err == nil && !product.IsCustomized:
		offer := pricing.ParseOffer(product.OfferText)
		finalQty = pricing.AutoAdjustQuantity(quantity, offer)
		price := pricing.Compute(product.BasePrice, finalQty, offer).UnitPrice
		repriced = &price
	case err == nil:
		// customized product, no offer treatment
	case errors.Is(err, ErrNotFound):
		// product row is gone, keep the requested quantity as-is
	default:
		return err
	}

	now := s.now()
	_, err = s.Store.MergeLine(ctx, customerID, productID, func(existing *Line) (Line, error) {
		if existing == nil {
			return Line{}, fmt.Errorf("item not in cart: %w", ErrNotFound)
		}
		updated := *existing
		updated.Quantity = finalQty
		if repriced != nil {
			updated.CachedUnitPrice = *repriced
		}
		updated.UpdatedAt = now
		return updated, nil
	})
	return err
}

// RemoveItem deletes one line from the customer's cart.
func (s *Service) RemoveItem(ctx context.Context, customerID, productID string) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	removed, err := s.Store.DeleteLine(ctx, customerID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("item not in cart: %w", ErrNotFound)
	}
	return nil
}

// Clear empties the customer's cart.
func (s *Service) Clear(ctx context.Context, customerID string) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	return s.Store.Clear(ctx, customerID)
}
