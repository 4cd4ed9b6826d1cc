// Package main provides a CLI tool for applying the schema and seeding
// the database with demo data.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"stockbook/internal/domain/catalogs/category"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/invoice"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Apply schema (idempotent)
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
		log.Info("demo data seeded")
	}

	log.Info("seeding completed successfully")
}

// seedDemoData inserts a small catalog and one invoice per direction.
// Skipped entirely when any category already exists.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cat_categories`).Scan(&count); err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	txManager := postgres.NewTxManager(pool)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	inputRepo := document_repo.NewInputInvoiceRepo(txManager)
	outputRepo := document_repo.NewOutputInvoiceRepo(txManager)

	return txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		hardware := category.NewCategory("HW", "Hardware")
		if err := categoryRepo.Create(ctx, hardware); err != nil {
			return fmt.Errorf("create category: %w", err)
		}

		bolt := product.NewProduct("BOLT-M8", "Bolt M8", "Galvanized M8 hex bolt")
		bolt.Unit = "pcs"
		bolt.SetCategory(hardware.ID.String())
		bolt.CreatedBy = "seed@stockbook.local"
		if err := productRepo.Create(ctx, bolt); err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		nut := product.NewProduct("NUT-M8", "Nut M8", "Galvanized M8 hex nut")
		nut.Unit = "pcs"
		nut.SetCategory(hardware.ID.String())
		nut.CreatedBy = "seed@stockbook.local"
		if err := productRepo.Create(ctx, nut); err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		today := time.Now().UTC()

		in := invoice.NewInvoice(invoice.DirectionInput, "Initial purchase", "Acme Supplies", "1 Warehouse Rd")
		in.Number = "IN-SEED-0001"
		in.Date = today
		in.AddLine(bolt.ID, 500, 12)
		in.AddLine(nut.ID, 500, 7)
		if err := inputRepo.Create(ctx, in); err != nil {
			return fmt.Errorf("create input invoice: %w", err)
		}
		if err := inputRepo.SaveLines(ctx, in.ID, in.Lines); err != nil {
			return fmt.Errorf("save input lines: %w", err)
		}

		out := invoice.NewInvoice(invoice.DirectionOutput, "First sale", "Bob's Garage", "2 Main St")
		out.Number = "OUT-SEED-0001"
		out.Date = today
		out.AddLine(bolt.ID, 40, 20)
		if err := outputRepo.Create(ctx, out); err != nil {
			return fmt.Errorf("create output invoice: %w", err)
		}
		if err := outputRepo.SaveLines(ctx, out.ID, out.Lines); err != nil {
			return fmt.Errorf("save output lines: %w", err)
		}

		return nil
	})
}
