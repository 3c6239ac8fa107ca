package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGProducts resolves cart-facing product data from Postgres. A product id is
// looked up in customized_products first, then in the regular catalog, so a
// customization always wins over a regular product with the same id.
type PGProducts struct {
	Pool *pgxpool.Pool
}

const lookupCustomizedSQL = `
SELECT cp.product_name, cp.price::text, COALESCE(s.business_name, ''), COALESCE(s.status, 'active')
FROM customized_products cp
LEFT JOIN sellers s ON s.id = cp.seller_id
WHERE cp.id = $1`

const lookupRegularSQL = `
SELECT p.product_name, p.price::text, COALESCE(p.special_offer, ''), COALESCE(s.business_name, ''), COALESCE(s.status, 'active')
FROM products p
LEFT JOIN sellers s ON s.id = p.seller_id
WHERE p.id = $1`

// Lookup implements ProductLookup.
func (pl *PGProducts) Lookup(ctx context.Context, productID string) (ProductInfo, error) {
	if pl == nil || pl.Pool == nil {
		return ProductInfo{}, errors.New("product lookup not configured")
	}
	pID, err := toUUID(productID)
	if err != nil {
		return ProductInfo{}, fmt.Errorf("parse product id: %w", err)
	}

	info, err := pl.lookupCustomized(ctx, pID)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return ProductInfo{}, err
	}

	var (
		name       string
		priceText  string
		offer      string
		sellerName string
		status     string
	)
	err = pl.Pool.QueryRow(ctx, lookupRegularSQL, pID).Scan(&name, &priceText, &offer, &sellerName, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductInfo{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return ProductInfo{}, err
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return ProductInfo{}, fmt.Errorf("parse product price: %w", err)
	}
	return ProductInfo{
		ID:           productID,
		Name:         name,
		BasePrice:    price,
		OfferText:    offer,
		SellerName:   sellerName,
		SellerBanned: status == "banned",
	}, nil
}

func (pl *PGProducts) lookupCustomized(ctx context.Context, pID pgtype.UUID) (ProductInfo, error) {
	var (
		name       string
		priceText  string
		sellerName string
		status     string
	)
	if err := pl.Pool.QueryRow(ctx, lookupCustomizedSQL, pID).Scan(&name, &priceText, &sellerName, &status); err != nil {
		return ProductInfo{}, err
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return ProductInfo{}, fmt.Errorf("parse product price: %w", err)
	}
	return ProductInfo{
		ID:           uuidString(pID),
		Name:         name,
		BasePrice:    price,
		IsCustomized: true,
		SellerName:   sellerName,
		SellerBanned: status == "banned",
	}, nil
}
