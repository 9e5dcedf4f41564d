package repository

import (
	"context"
	"time"
)

// PostRepository is the dedup store: a persisted set of item identifiers that
// have already been notified.
type PostRepository interface {
	// RecordIfNew atomically inserts the item identifier, scoped to a channel
	// link. It returns true if the identifier was newly recorded (the caller
	// must notify) and false if it already existed (the caller must skip).
	// The insert-or-observe-conflict step happens inside the store; callers
	// on different links and platforms may race freely.
	RecordIfNew(ctx context.Context, itemID string, channelLinkID int64, discoveredAt time.Time) (bool, error)

	// DeleteOlderThan removes dedup records discovered before cutoff and
	// returns how many were deleted. Only the retention sweep calls this.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
