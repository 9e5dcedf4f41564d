package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"postwatch/internal/repository"
)

type PostRepo struct{ db *sql.DB }

func NewPostRepo(db *sql.DB) repository.PostRepository {
	return &PostRepo{db: db}
}

// RecordIfNew claims the item id for this link. The UNIQUE constraint on
// item_id arbitrates concurrent claims; exactly one caller sees true.
func (repo *PostRepo) RecordIfNew(ctx context.Context, itemID string, channelLinkID int64, discoveredAt time.Time) (bool, error) {
	const query = `
INSERT INTO posts (item_id, channel_link_id, discovered_at)
VALUES ($1, $2, $3)
ON CONFLICT (item_id) DO NOTHING`
	result, err := repo.db.ExecContext(ctx, query, itemID, channelLinkID, discoveredAt)
	if err != nil {
		return false, fmt.Errorf("RecordIfNew: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("RecordIfNew: rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteOlderThan drops dedup records discovered before the cutoff and
// returns how many were removed.
func (repo *PostRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
DELETE FROM posts
WHERE discovered_at < $1`
	result, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: rows affected: %w", err)
	}
	return affected, nil
}
