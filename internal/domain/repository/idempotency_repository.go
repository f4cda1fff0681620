package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable checkout responses per user.
type IdempotencyRepository interface {
	// Lookup returns the unexpired response stored for owner under key, or nil.
	Lookup(ctx context.Context, owner uuid.UUID, key string, now time.Time) (*entity.IdempotencyKey, error)
	// Save stores a response, replacing an expired entry for the same key.
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Purge drops entries that expired before cutoff.
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}
