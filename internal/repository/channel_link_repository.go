// Package repository declares the persistence interfaces consumed by the use
// case layer. Concrete adapters live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"postwatch/internal/domain/entity"
)

// ChannelLinkRepository manages registered channel links. The checker only
// reads; writes come from the admin command layer.
type ChannelLinkRepository interface {
	// ListByPlatform returns every link registered for the named platform,
	// with the Platform field populated. Order is unspecified.
	ListByPlatform(ctx context.Context, platform string) ([]*entity.ChannelLink, error)

	// ListByDestination returns every link registered in one Discord channel,
	// across all platforms.
	ListByDestination(ctx context.Context, discordChannelID string) ([]*entity.ChannelLink, error)

	// CountByPlatformDestination counts links for one platform in one Discord
	// channel. Used to enforce the per-channel registration cap.
	CountByPlatformDestination(ctx context.Context, platform, discordChannelID string) (int64, error)

	// Upsert inserts the link, or updates DisplayName, ShouldMention and
	// RoleMentionID when the (SourceID, DiscordChannelID) pair already exists.
	// Returns entity.ErrNotFound if link.Platform names no seeded platform.
	Upsert(ctx context.Context, link *entity.ChannelLink) error

	// Delete removes the link identified by platform, source id and
	// destination. Dedup records cascade with it. Returns false when no such
	// link exists.
	Delete(ctx context.Context, platform, sourceID, discordChannelID string) (bool, error)
}
