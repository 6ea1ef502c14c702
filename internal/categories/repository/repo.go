package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homepro-hq/marketplace-backend/internal/categories/domain"
)

// Repo provides persistence operations for service categories.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// List returns all active categories ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id, name, slug
FROM categories
WHERE deleted_at IS NULL
ORDER BY name;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0, 16)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
