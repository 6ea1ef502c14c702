package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/homepro-hq/marketplace-backend/internal/intake/domain"
)

const (
	draftKeyPrefix     = "intake:draft:" // Draft data: intake:draft:{draft_id}
	userDraftSetPrefix = "intake:user:"  // Set of draft IDs per user: intake:user:{user_id}
	defaultDraftTTL    = 72 * time.Hour  // Abandoned drafts expire on their own
)

// DraftRepository stores wizard drafts in Redis as JSON blobs. Every write
// refreshes the TTL, so an actively edited draft survives reloads while an
// abandoned one decays without explicit cleanup.
type DraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftRepository(client *redis.Client, ttl time.Duration) *DraftRepository {
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}
	return &DraftRepository{client: client, ttl: ttl}
}

// Create stores a new draft and indexes it under its owner.
func (r *DraftRepository) Create(ctx context.Context, draft *domain.ProjectDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.draftKey(draft.ID), data, r.ttl)
	pipe.SAdd(ctx, r.userSetKey(draft.UserID), draft.ID)
	pipe.Expire(ctx, r.userSetKey(draft.UserID), r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create draft: %w", err)
	}
	return nil
}

// Get retrieves a draft by ID.
func (r *DraftRepository) Get(ctx context.Context, draftID string) (*domain.ProjectDraft, error) {
	data, err := r.client.Get(ctx, r.draftKey(draftID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var draft domain.ProjectDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Save rewrites an existing draft and refreshes its TTL.
func (r *DraftRepository) Save(ctx context.Context, draft *domain.ProjectDraft) error {
	draft.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := r.client.Set(ctx, r.draftKey(draft.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Delete removes a draft and its index entry.
func (r *DraftRepository) Delete(ctx context.Context, draftID, userID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.draftKey(draftID))
	pipe.SRem(ctx, r.userSetKey(userID), draftID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// ListByUser returns the user's live drafts, newest first. Index entries whose
// draft blob has already expired are skipped.
func (r *DraftRepository) ListByUser(ctx context.Context, userID string) ([]domain.ProjectDraft, error) {
	ids, err := r.client.SMembers(ctx, r.userSetKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	out := make([]domain.ProjectDraft, 0, len(ids))
	for _, id := range ids {
		draft, err := r.Get(ctx, id)
		if err == domain.ErrDraftNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *draft)
	}

	// newest first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// SweepUserSets walks all user index sets and drops IDs whose draft blob has
// expired. Returns the number of dangling entries removed.
func (r *DraftRepository) SweepUserSets(ctx context.Context) (int, error) {
	removed := 0

	iter := r.client.Scan(ctx, 0, userDraftSetPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()

		ids, err := r.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return removed, fmt.Errorf("sweep %s: %w", setKey, err)
		}

		for _, id := range ids {
			exists, err := r.client.Exists(ctx, r.draftKey(id)).Result()
			if err != nil {
				return removed, fmt.Errorf("sweep %s: %w", setKey, err)
			}
			if exists == 0 {
				if err := r.client.SRem(ctx, setKey, id).Err(); err != nil {
					return removed, fmt.Errorf("sweep %s: %w", setKey, err)
				}
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("sweep scan: %w", err)
	}
	return removed, nil
}

func (r *DraftRepository) draftKey(draftID string) string {
	return draftKeyPrefix + draftID
}

func (r *DraftRepository) userSetKey(userID string) string {
	return userDraftSetPrefix + userID
}
