package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	product "github.com/angelmondragon/greatkart/internal/products"
	"github.com/angelmondragon/greatkart/pkg/config"
	"github.com/angelmondragon/greatkart/pkg/db"
	"github.com/angelmondragon/greatkart/pkg/logger"
	"github.com/angelmondragon/greatkart/pkg/migrate"
)

var demoProducts = []product.CreateProductInput{
	{Name: "Classic Denim Jacket", Slug: "classic-denim-jacket", Description: "Washed blue denim, button front.", Price: decimal.RequireFromString("59.99"), Stock: 40},
	{Name: "Canvas Sneakers", Slug: "canvas-sneakers", Description: "Low-top canvas shoes.", Price: decimal.RequireFromString("34.50"), Stock: 75},
	{Name: "Leather Wallet", Slug: "leather-wallet", Description: "Bifold, full grain leather.", Price: decimal.RequireFromString("22.49"), Stock: 120},
	{Name: "Wool Beanie", Slug: "wool-beanie", Description: "Ribbed merino knit.", Price: decimal.RequireFromString("14.99"), Stock: 200},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	svc, err := product.NewService(product.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	seedErr := seedCatalog(ctx, logg, svc, demoProducts)
	if err := dbClient.Close(); err != nil {
		logg.Error(ctx, "failed to close database", err)
	}
	if seedErr != nil {
		os.Exit(1)
	}
}

// seedCatalog ensures every input exists and logs the resulting catalog size.
func seedCatalog(ctx context.Context, logg *logger.Logger, svc product.Service, inputs []product.CreateProductInput) error {
	created := 0
	for _, input := range inputs {
		p, isNew, err := svc.EnsureProduct(ctx, input)
		if err != nil {
			logg.Error(logg.WithField(ctx, "slug", input.Slug), "seed product failed", err)
			return err
		}
		pctx := logg.WithFields(ctx, map[string]any{"slug": p.Slug, "product_id": p.ID.String()})
		if isNew {
			created++
			logg.Info(pctx, "product created")
		} else {
			logg.Info(pctx, "product exists, skipped")
		}
	}

	catalog, err := svc.List(ctx)
	if err != nil {
		logg.Error(ctx, "list catalog failed", err)
		return err
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"created":       created,
		"catalog_count": len(catalog),
	}), "seed complete")
	return nil
}
