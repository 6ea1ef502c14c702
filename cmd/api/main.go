package main

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/homepro-hq/marketplace-backend/config"
	"github.com/homepro-hq/marketplace-backend/internal/auth"
	"github.com/homepro-hq/marketplace-backend/internal/bootstrap"
	catcron "github.com/homepro-hq/marketplace-backend/internal/categories/cron"
	catrepo "github.com/homepro-hq/marketplace-backend/internal/categories/repository"
	catservice "github.com/homepro-hq/marketplace-backend/internal/categories/service"
	"github.com/homepro-hq/marketplace-backend/internal/projects"
	"github.com/homepro-hq/marketplace-backend/internal/uploads"
)

const serviceName = "marketplace-intake"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

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

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.NewFirebaseAuth(ctx, cfg.Firebase.CredentialsPath)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	} else {
		log.Println("Firebase credentials not configured, using header identity")
	}

	resolver := catservice.NewResolver(
		catrepo.NewRepo(pool),
		catrepo.NewCache(rdb, cfg.Intake.CategoryCacheTTL),
	)

	refresher := catcron.NewRefresher(resolver, cfg.Intake.CategoryRefreshCron)
	refresher.Start()
	defer refresher.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          pool,
		Redis:       rdb,
		AuthClient:  authClient,
		Categories:  resolver,
		Files:       uploads.NewClient(cfg.Upstream.FileServiceURL, cfg.Intake.UploadRatePerSecond, cfg.Intake.UploadBurst),
		Creator:     projects.NewClient(cfg.Upstream.ProjectServiceURL),
		DraftTTL:    cfg.Intake.DraftTTL,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
