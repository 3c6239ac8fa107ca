package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-pasar/internal/config"
	"github.com/noah-isme/backend-pasar/internal/db"
)

type product struct {
	name  string
	price string
	offer string
	stock int
}

var catalog = map[string][]product{
	"Tani Makmur": {
		{"Beras Organik 5kg", "89.50", "10% Off", 120},
		{"Gula Aren 1kg", "35.00", "Buy 2 Get 1 Free", 300},
		{"Kopi Robusta 250g", "42.75", "", 80},
	},
	"Kebun Sejahtera": {
		{"Madu Hutan 500ml", "125.00", "15% Off", 45},
		{"Minyak Kelapa 1L", "58.25", "Buy 1 Get 1 Free", 60},
		{"Teh Hijau 100g", "27.90", "", 150},
	},
	"Sumber Rejeki": {
		{"Cabai Kering 500g", "64.00", "25% Off", 40},
		{"Bawang Goreng 250g", "31.50", "", 95},
	},
}

var customized = map[string][]product{
	"Tani Makmur": {
		{"Paket Hampers Lebaran", "250.00", "", 0},
	},
}

func main() {
	runMigrations := flag.Bool("migrate", true, "apply schema migrations before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if *runMigrations {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	for seller, products := range catalog {
		sellerID, err := ensureSeller(ctx, pool, seller)
		if err != nil {
			log.Fatalf("ensure seller %q: %v", seller, err)
		}
		for _, p := range products {
			if err := upsertProduct(ctx, pool, sellerID, p); err != nil {
				log.Fatalf("seed product %q: %v", p.name, err)
			}
		}
		for _, p := range customized[seller] {
			if err := upsertCustomized(ctx, pool, sellerID, p); err != nil {
				log.Fatalf("seed customized product %q: %v", p.name, err)
			}
		}
	}

	log.Println("seeding completed")
}

func ensureSeller(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `
		SELECT id FROM sellers WHERE business_name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
		INSERT INTO sellers (business_name, status) VALUES ($1, 'active')
		RETURNING id`, name).Scan(&id)
	return id, err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, sellerID string, p product) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO products (seller_id, product_name, price, special_offer, stock, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, 'active')
		ON CONFLICT DO NOTHING`,
		sellerID, p.name, p.price, p.offer, p.stock)
	return err
}

func upsertCustomized(ctx context.Context, pool *pgxpool.Pool, sellerID string, p product) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO customized_products (seller_id, product_name, price)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		sellerID, p.name, p.price)
	return err
}
