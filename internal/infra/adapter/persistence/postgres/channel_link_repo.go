// Package postgres implements the repository interfaces on database/sql
// with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"postwatch/internal/domain/entity"
	"postwatch/internal/repository"
)

type ChannelLinkRepo struct{ db *sql.DB }

func NewChannelLinkRepo(db *sql.DB) repository.ChannelLinkRepository {
	return &ChannelLinkRepo{db: db}
}

const channelLinkColumns = `
cl.id, cl.source_id, cl.display_name, cl.discord_channel_id, cl.platform_id,
p.name, cl.should_mention, cl.role_mention_id, cl.created_at`

func scanChannelLink(rows *sql.Rows) (*entity.ChannelLink, error) {
	var link entity.ChannelLink
	if err := rows.Scan(
		&link.ID, &link.SourceID, &link.DisplayName, &link.DiscordChannelID,
		&link.PlatformID, &link.Platform, &link.ShouldMention, &link.RoleMentionID,
		&link.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &link, nil
}

func (repo *ChannelLinkRepo) ListByPlatform(ctx context.Context, platform string) ([]*entity.ChannelLink, error) {
	const query = `
SELECT` + channelLinkColumns + `
FROM channel_links cl
JOIN platforms p ON p.id = cl.platform_id
WHERE p.name = $1
ORDER BY cl.id ASC`
	rows, err := repo.db.QueryContext(ctx, query, platform)
	if err != nil {
		return nil, fmt.Errorf("ListByPlatform: %w", err)
	}
	defer rows.Close()

	return collectChannelLinks(rows, "ListByPlatform")
}

func (repo *ChannelLinkRepo) ListByDestination(ctx context.Context, discordChannelID string) ([]*entity.ChannelLink, error) {
	const query = `
SELECT` + channelLinkColumns + `
FROM channel_links cl
JOIN platforms p ON p.id = cl.platform_id
WHERE cl.discord_channel_id = $1
ORDER BY p.name ASC, cl.display_name ASC`
	rows, err := repo.db.QueryContext(ctx, query, discordChannelID)
	if err != nil {
		return nil, fmt.Errorf("ListByDestination: %w", err)
	}
	defer rows.Close()

	return collectChannelLinks(rows, "ListByDestination")
}

func collectChannelLinks(rows *sql.Rows, op string) ([]*entity.ChannelLink, error) {
	var links []*entity.ChannelLink
	for rows.Next() {
		link, err := scanChannelLink(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return links, nil
}

func (repo *ChannelLinkRepo) CountByPlatformDestination(ctx context.Context, platform, discordChannelID string) (int64, error) {
	const query = `
SELECT COUNT(*)
FROM channel_links cl
JOIN platforms p ON p.id = cl.platform_id
WHERE p.name = $1 AND cl.discord_channel_id = $2`
	var count int64
	err := repo.db.QueryRowContext(ctx, query, platform, discordChannelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountByPlatformDestination: %w", err)
	}
	return count, nil
}

// Upsert inserts a link or refreshes the mutable fields of an existing one.
// The (source_id, discord_channel_id) pair identifies the link. Returns
// entity.ErrNotFound when the platform name is not in the catalog.
func (repo *ChannelLinkRepo) Upsert(ctx context.Context, link *entity.ChannelLink) error {
	const query = `
INSERT INTO channel_links
    (source_id, display_name, discord_channel_id, platform_id, should_mention, role_mention_id)
SELECT $1, $2, $3, p.id, $4, $5
FROM platforms p
WHERE p.name = $6
ON CONFLICT (source_id, discord_channel_id) DO UPDATE SET
    display_name    = EXCLUDED.display_name,
    should_mention  = EXCLUDED.should_mention,
    role_mention_id = EXCLUDED.role_mention_id`
	result, err := repo.db.ExecContext(ctx, query,
		link.SourceID, link.DisplayName, link.DiscordChannelID,
		link.ShouldMention, link.RoleMentionID, link.Platform)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Upsert: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("Upsert: platform %q: %w", link.Platform, entity.ErrNotFound)
	}
	return nil
}

// Delete removes the link identified by platform, source and destination.
// Associated posts go with it through the foreign key cascade.
func (repo *ChannelLinkRepo) Delete(ctx context.Context, platform, sourceID, discordChannelID string) (bool, error) {
	const query = `
DELETE FROM channel_links cl
USING platforms p
WHERE p.id = cl.platform_id
  AND p.name = $1
  AND cl.source_id = $2
  AND cl.discord_channel_id = $3`
	result, err := repo.db.ExecContext(ctx, query, platform, sourceID, discordChannelID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: rows affected: %w", err)
	}
	return affected > 0, nil
}
