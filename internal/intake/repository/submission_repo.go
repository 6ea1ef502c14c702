package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRecord is one journal row describing a submission attempt.
type SubmissionRecord struct {
	DraftID      string
	UserID       string
	Succeeded    bool
	ProjectID    *int64
	ErrorMessage string
}

// SubmissionRepository journals every submission attempt to Postgres. The
// journal is append-only and exists for support and reconciliation; the
// submission outcome itself lives on the draft.
type SubmissionRepository struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Record(ctx context.Context, rec SubmissionRecord) error {
	const q = `
INSERT INTO intake_submissions (draft_id, user_id, succeeded, project_id, error_message)
VALUES ($1, $2, $3, $4, NULLIF($5, ''));
`
	_, err := r.db.Exec(ctx, q, rec.DraftID, rec.UserID, rec.Succeeded, rec.ProjectID, rec.ErrorMessage)
	return err
}
