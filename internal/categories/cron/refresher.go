package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/homepro-hq/marketplace-backend/internal/categories/service"
)

// Refresher periodically re-warms the category cache so the intake API rarely
// has to touch Postgres on the hot path.
type Refresher struct {
	resolver *service.Resolver
	spec     string
	c        *cron.Cron
}

func NewRefresher(resolver *service.Resolver, spec string) *Refresher {
	return &Refresher{resolver: resolver, spec: spec}
}

// Start registers the cron entry and begins scheduling.
func (r *Refresher) Start() {
	r.c = cron.New(cron.WithSeconds())

	_, err := r.c.AddFunc(r.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.resolver.Refresh(ctx); err != nil {
			log.Printf("category cache refresh failed: %v", err)
			return
		}
		log.Println("category cache refreshed")
	})
	if err != nil {
		log.Printf("Failed to create category refresh cron job: %v", err)
		return
	}

	log.Printf("Category refresher started (spec %q)", r.spec)
	r.c.Start()
}

// Stop halts scheduling. Running jobs finish on their own.
func (r *Refresher) Stop() {
	if r.c != nil {
		r.c.Stop()
	}
}
