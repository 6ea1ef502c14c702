package main

import (
	"context"
	"log"
	"time"

	"github.com/homepro-hq/marketplace-backend/config"
	"github.com/homepro-hq/marketplace-backend/internal/bootstrap"
	intakerepo "github.com/homepro-hq/marketplace-backend/internal/intake/repository"
)

// RunSweepDrafts drops user-index entries whose draft blobs have expired.
// Draft data itself expires by TTL; only the per-user sets accumulate
// dangling IDs over time.
func RunSweepDrafts() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	repo := intakerepo.NewDraftRepository(rdb, cfg.Intake.DraftTTL)

	removed, err := repo.SweepUserSets(ctx)
	if err != nil {
		log.Fatalf("sweep drafts: %v", err)
	}
	log.Printf("sweep complete, removed %d dangling draft entries", removed)
}
