package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Line is a persisted cart line. CachedUnitPrice is a write-time snapshot
// only; read paths always reprice from the live product and never trust it.
type Line struct {
	CustomerID      string
	ProductID       string
	Quantity        int
	CachedUnitPrice decimal.Decimal
	AddedAt         time.Time
	UpdatedAt       time.Time
}

// ProductInfo is the product projection the cart needs for pricing decisions.
type ProductInfo struct {
	ID           string
	Name         string
	BasePrice    decimal.Decimal
	OfferText    string
	IsCustomized bool
	SellerName   string
	SellerBanned bool
}

// ProductLookup resolves live product data. Implementations return ErrNotFound
// (possibly wrapped) when the product does not exist.
type ProductLookup interface {
	Lookup(ctx context.Context, productID string) (ProductInfo, error)
}

// Store persists cart lines keyed by (customerID, productID). The cart itself
// is created lazily on first add.
type Store interface {
	// MergeLine atomically reads the current line, passes it to decide
	// (nil when absent), and persists the returned line. decide runs inside
	// the store's transaction so concurrent adds of the same product cannot
	// lose updates. An error from decide aborts without persisting.
	MergeLine(ctx context.Context, customerID, productID string, decide func(existing *Line) (Line, error)) (Line, error)

	// GetLine returns the stored line or ErrNotFound.
	GetLine(ctx context.Context, customerID, productID string) (Line, error)

	// ListLines returns all lines for the customer ordered most recently
	// added first.
	ListLines(ctx context.Context, customerID string) ([]Line, error)

	// DeleteLine removes one line, reporting whether it existed.
	DeleteLine(ctx context.Context, customerID, productID string) (bool, error)

	// Clear removes every line in the customer's cart.
	Clear(ctx context.Context, customerID string) error
}
