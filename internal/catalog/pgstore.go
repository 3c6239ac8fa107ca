package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGStore reads storefront catalog rows from Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

const listActiveBySellerSQL = `
SELECT id, product_name, price::text, COALESCE(special_offer, ''), stock
FROM products
WHERE seller_id = $1 AND status = 'active'
ORDER BY product_name`

// ListActiveBySeller implements Store.
func (st *PGStore) ListActiveBySeller(ctx context.Context, sellerID string) ([]Product, error) {
	if st == nil || st.Pool == nil {
		return nil, errors.New("catalog store not configured")
	}
	parsed, err := uuid.Parse(sellerID)
	if err != nil {
		return nil, fmt.Errorf("parse seller id: %w", err)
	}
	sID := pgtype.UUID{Bytes: parsed, Valid: true}

	rows, err := st.Pool.Query(ctx, listActiveBySellerSQL, sID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var (
			id        pgtype.UUID
			name      string
			priceText string
			offer     string
			stock     int
		)
		if err := rows.Scan(&id, &name, &priceText, &offer, &stock); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("parse product price: %w", err)
		}
		products = append(products, Product{
			ID:           uuid.UUID(id.Bytes).String(),
			SellerID:     sellerID,
			Name:         name,
			BasePrice:    price,
			SpecialOffer: offer,
			Stock:        stock,
		})
	}
	return products, rows.Err()
}
