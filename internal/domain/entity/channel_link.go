package entity

import "time"

// Length caps match the relational schema.
const (
	maxSourceIDLen    = 48
	maxDisplayNameLen = 64
)

// ChannelLink binds one external source identifier (a playlist ID or a
// subreddit name, depending on the platform) to one Discord channel, together
// with the notification policy applied when new items are discovered.
//
// A link is unique per (SourceID, DiscordChannelID) pair: registering the same
// source to the same destination again updates the policy fields instead of
// creating a duplicate.
type ChannelLink struct {
	ID               int64
	SourceID         string // playlist ID (YouTube) or subreddit name (Reddit)
	DisplayName      string
	DiscordChannelID string
	PlatformID       int64
	Platform         string // platform name, populated on read via join
	ShouldMention    bool
	RoleMentionID    *string // nil means mention @everyone when pinging
	CreatedAt        time.Time
}

// Validate checks the fields an administrator controls. It is called before
// the link is written to the store.
func (l *ChannelLink) Validate() error {
	if l.SourceID == "" {
		return &ValidationError{Field: "source_id", Message: "must not be empty"}
	}
	if len(l.SourceID) > maxSourceIDLen {
		return &ValidationError{Field: "source_id", Message: "too long"}
	}
	if l.DisplayName == "" {
		return &ValidationError{Field: "display_name", Message: "must not be empty"}
	}
	if len(l.DisplayName) > maxDisplayNameLen {
		return &ValidationError{Field: "display_name", Message: "too long"}
	}
	if l.DiscordChannelID == "" {
		return &ValidationError{Field: "discord_channel_id", Message: "must not be empty"}
	}
	if !KnownPlatform(l.Platform) {
		return &ValidationError{Field: "platform", Message: "unknown platform"}
	}
	return nil
}
