package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Apurer/northwind-orders/internal/platform/migrations"
	platformpostgres "github.com/Apurer/northwind-orders/internal/platform/postgres"
)

func main() {
	seedFile := flag.String("seed-file", os.Getenv("NORTHWIND_SEED_FILE"), "YAML reference catalog; the bundled sample when empty")
	skipSeed := flag.Bool("skip-seed", false, "only migrate the schema")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	dsn := strings.TrimSpace(os.Getenv("NORTHWIND_DATABASE_URL"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	}
	if dsn == "" {
		log.Fatal("NORTHWIND_DATABASE_URL or POSTGRES_DSN must be set")
	}

	db, err := platformpostgres.Connect(ctx, dsn, logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	logger.Info("schema migrated")
	if *skipSeed {
		return
	}

	catalog, err := migrations.LoadCatalogFile(*seedFile)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	if err := migrations.Seed(ctx, db, catalog); err != nil {
		log.Fatalf("failed to seed reference data: %v", err)
	}
	logger.Info("reference data seeded",
		slog.Int("categories", len(catalog.Categories)),
		slog.Int("products", len(catalog.Products)),
		slog.Int("customers", len(catalog.Customers)),
	)
}
