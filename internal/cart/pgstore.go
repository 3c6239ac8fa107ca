package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGStore persists carts and cart lines in Postgres. The cart row is created
// lazily on first add; line merges run inside a single transaction with the
// row locked, so concurrent adds of the same product serialise instead of
// losing updates.
type PGStore struct {
	Pool *pgxpool.Pool
}

const getOrCreateCartSQL = `
INSERT INTO carts (customer_id)
VALUES ($1)
ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
RETURNING id`

const selectLineForUpdateSQL = `
SELECT quantity, price::text, added_at, updated_at
FROM cart_items
WHERE cart_id = $1 AND product_id = $2
FOR UPDATE`

const upsertLineSQL = `
INSERT INTO cart_items (cart_id, product_id, quantity, price, added_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at`

// MergeLine implements Store.
func (st *PGStore) MergeLine(ctx context.Context, customerID, productID string, decide func(existing *Line) (Line, error)) (Line, error) {
	if st == nil || st.Pool == nil {
		return Line{}, errors.New("cart store not configured")
	}
	cID, err := toUUID(customerID)
	if err != nil {
		return Line{}, fmt.Errorf("parse customer id: %w", err)
	}
	pID, err := toUUID(productID)
	if err != nil {
		return Line{}, fmt.Errorf("parse product id: %w", err)
	}

	tx, err := st.Pool.Begin(ctx)
	if err != nil {
		return Line{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cartID pgtype.UUID
	if err := tx.QueryRow(ctx, getOrCreateCartSQL, cID).Scan(&cartID); err != nil {
		return Line{}, err
	}

	var existing *Line
	row := tx.QueryRow(ctx, selectLineForUpdateSQL, cartID, pID)
	var (
		qty       int
		priceText string
		addedAt   pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	scanErr := row.Scan(&qty, &priceText, &addedAt, &updatedAt)
	switch {
	case scanErr == nil:
		price, perr := decimal.NewFromString(priceText)
		if perr != nil {
			return Line{}, fmt.Errorf("parse stored price: %w", perr)
		}
		existing = &Line{
			CustomerID:      customerID,
			ProductID:       productID,
			Quantity:        qty,
			CachedUnitPrice: price,
			AddedAt:         addedAt.Time,
			UpdatedAt:       updatedAt.Time,
		}
	case errors.Is(scanErr, pgx.ErrNoRows):
		existing = nil
	default:
		return Line{}, scanErr
	}

	line, err := decide(existing)
	if err != nil {
		return Line{}, err
	}
	if existing != nil {
		line.AddedAt = existing.AddedAt
	}

	if _, err := tx.Exec(ctx, upsertLineSQL,
		cartID, pID, line.Quantity, line.CachedUnitPrice.StringFixed(2), line.AddedAt, line.UpdatedAt,
	); err != nil {
		return Line{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Line{}, err
	}
	return line, nil
}

// GetLine implements Store.
func (st *PGStore) GetLine(ctx context.Context, customerID, productID string) (Line, error) {
	if st == nil || st.Pool == nil {
		return Line{}, errors.New("cart store not configured")
	}
	cID, err := toUUID(customerID)
	if err != nil {
		return Line{}, fmt.Errorf("parse customer id: %w", err)
	}
	pID, err := toUUID(productID)
	if err != nil {
		return Line{}, fmt.Errorf("parse product id: %w", err)
	}
	const q = `
SELECT ci.quantity, ci.price::text, ci.added_at, ci.updated_at
FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
WHERE c.customer_id = $1 AND ci.product_id = $2`
	var (
		qty       int
		priceText string
		addedAt   pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := st.Pool.QueryRow(ctx, q, cID, pID).Scan(&qty, &priceText, &addedAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Line{}, fmt.Errorf("cart line: %w", ErrNotFound)
		}
		return Line{}, err
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return Line{}, fmt.Errorf("parse stored price: %w", err)
	}
	return Line{
		CustomerID:      customerID,
		ProductID:       productID,
		Quantity:        qty,
		CachedUnitPrice: price,
		AddedAt:         addedAt.Time,
		UpdatedAt:       updatedAt.Time,
	}, nil
}

// ListLines implements Store, ordered most recently added first.
func (st *PGStore) ListLines(ctx context.Context, customerID string) ([]Line, error) {
	if st == nil || st.Pool == nil {
		return nil, errors.New("cart store not configured")
	}
	cID, err := toUUID(customerID)
	if err != nil {
		return nil, fmt.Errorf("parse customer id: %w", err)
	}
	const q = `
SELECT ci.product_id, ci.quantity, ci.price::text, ci.added_at, ci.updated_at
FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
WHERE c.customer_id = $1
ORDER BY ci.added_at DESC`
	rows, err := st.Pool.Query(ctx, q, cID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var (
			pID       pgtype.UUID
			qty       int
			priceText string
			addedAt   pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&pID, &qty, &priceText, &addedAt, &updatedAt); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("parse stored price: %w", err)
		}
		lines = append(lines, Line{
			CustomerID:      customerID,
			ProductID:       uuidString(pID),
			Quantity:        qty,
			CachedUnitPrice: price,
			AddedAt:         addedAt.Time,
			UpdatedAt:       updatedAt.Time,
		})
	}
	return lines, rows.Err()
}

// DeleteLine implements Store.
func (st *PGStore) DeleteLine(ctx context.Context, customerID, productID string) (bool, error) {
	if st == nil || st.Pool == nil {
		return false, errors.New("cart store not configured")
	}
	cID, err := toUUID(customerID)
	if err != nil {
		return false, fmt.Errorf("parse customer id: %w", err)
	}
	pID, err := toUUID(productID)
	if err != nil {
		return false, fmt.Errorf("parse product id: %w", err)
	}
	const q = `
DELETE FROM cart_items ci
USING carts c
WHERE ci.cart_id = c.id AND c.customer_id = $1 AND ci.product_id = $2`
	tag, err := st.Pool.Exec(ctx, q, cID, pID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Clear implements Store.
func (st *PGStore) Clear(ctx context.Context, customerID string) error {
	if st == nil || st.Pool == nil {
		return errors.New("cart store not configured")
	}
	cID, err := toUUID(customerID)
	if err != nil {
		return fmt.Errorf("parse customer id: %w", err)
	}
	const q = `
DELETE FROM cart_items ci
USING carts c
WHERE ci.cart_id = c.id AND c.customer_id = $1`
	_, err = st.Pool.Exec(ctx, q, cID)
	return err
}

func toUUID(value string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}
