package main

import (
	"context"
	"log"
	"time"

	"github.com/homepro-hq/marketplace-backend/config"
	"github.com/homepro-hq/marketplace-backend/internal/bootstrap"
	catrepo "github.com/homepro-hq/marketplace-backend/internal/categories/repository"
	catservice "github.com/homepro-hq/marketplace-backend/internal/categories/service"
)

// RunRefreshCategories re-warms the category cache once and exits. The same
// work runs on a schedule inside the API process; this command exists for
// deploys that change the catalogue.
func RunRefreshCategories() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	resolver := catservice.NewResolver(
		catrepo.NewRepo(pool),
		catrepo.NewCache(rdb, cfg.Intake.CategoryCacheTTL),
	)

	if err := resolver.Refresh(ctx); err != nil {
		log.Fatalf("refresh categories: %v", err)
	}
	log.Println("category cache refreshed")
}
