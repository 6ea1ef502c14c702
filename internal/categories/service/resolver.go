package service

import (
	"context"

	"github.com/homepro-hq/marketplace-backend/internal/categories/domain"
	"github.com/homepro-hq/marketplace-backend/internal/categories/repository"
)

// ListSource yields the authoritative category catalogue.
type ListSource interface {
	List(ctx context.Context) ([]domain.Category, error)
}

// Resolver serves the category catalogue and resolves display names to IDs
// for draft submission. Reads go through the Redis cache when available.
type Resolver struct {
	source ListSource
	cache  *repository.Cache
}

func NewResolver(source ListSource, cache *repository.Cache) *Resolver {
	return &Resolver{source: source, cache: cache}
}

// List returns all active categories, preferring the cache. A cache failure
// falls back to the source rather than failing the request.
func (r *Resolver) List(ctx context.Context) ([]domain.Category, error) {
	if r.cache != nil {
		cats, ok, err := r.cache.Get(ctx)
		if err == nil && ok {
			return cats, nil
		}
	}

	cats, err := r.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, cats)
	}
	return cats, nil
}

// Resolve maps a category name to its ID. Matching is an exact, case-sensitive
// comparison against the catalogue.
func (r *Resolver) Resolve(ctx context.Context, name string) (int64, error) {
	cats, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range cats {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return 0, domain.ErrUnknownCategory
}

// Refresh re-reads the catalogue from the source and rewrites the cache.
func (r *Resolver) Refresh(ctx context.Context) error {
	cats, err := r.source.List(ctx)
	if err != nil {
		return err
	}
	if r.cache != nil {
		return r.cache.Set(ctx, cats)
	}
	return nil
}
