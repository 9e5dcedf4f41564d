package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"postwatch/internal/domain/entity"
)

const handlerTimeout = 10 * time.Second

const listEmbedColor = 0x9542F5

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// respond sends an ephemeral reply that never pings anyone, whatever the
// content happens to contain.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}},
		},
	})
	if err != nil {
		slog.Warn("interaction response failed", slog.Any("error", err))
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:          []*discordgo.MessageEmbed{embed},
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}},
		},
	})
	if err != nil {
		slog.Warn("interaction response failed", slog.Any("error", err))
	}
}

/* ───────── /add_link ───────── */

func (b *Bot) handleAddLink(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	link := linkFromOptions(i)
	if err := link.Validate(); err != nil {
		respond(s, i, fmt.Sprintf("Invalid link: %v", err))
		return
	}

	count, err := b.links.CountByPlatformDestination(ctx, link.Platform, link.DiscordChannelID)
	if err != nil {
		slog.Error("add_link count failed", slog.Any("error", err))
		respond(s, i, "Something went wrong, try again later.")
		return
	}
	if count >= maxLinksPerPlatformChannel {
		respond(s, i, fmt.Sprintf("This channel already watches %d %s sources, remove one first.",
			maxLinksPerPlatformChannel, link.Platform))
		return
	}

	if err := b.links.Upsert(ctx, link); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			respond(s, i, fmt.Sprintf("Unknown platform %q.", link.Platform))
			return
		}
		slog.Error("add_link upsert failed", slog.Any("error", err))
		respond(s, i, "Something went wrong, try again later.")
		return
	}

	slog.Info("channel link added",
		slog.String("platform", link.Platform),
		slog.String("source_id", link.SourceID),
		slog.String("discord_channel_id", link.DiscordChannelID))
	respond(s, i, fmt.Sprintf("Now watching **%s** (%s) in this channel.", link.DisplayName, link.Platform))
}

// linkFromOptions builds the channel link an /add_link invocation describes.
func linkFromOptions(i *discordgo.InteractionCreate) *entity.ChannelLink {
	opts := optionMap(i)

	link := &entity.ChannelLink{
		Platform:         opts["platform"].StringValue(),
		SourceID:         strings.TrimSpace(opts["source_id"].StringValue()),
		DisplayName:      strings.TrimSpace(opts["display_name"].StringValue()),
		DiscordChannelID: i.ChannelID,
		ShouldMention:    true,
	}
	if opt, ok := opts["should_ping"]; ok {
		link.ShouldMention = opt.BoolValue()
	}
	if opt, ok := opts["mention_role"]; ok {
		roleID := opt.Value.(string)
		link.RoleMentionID = &roleID
	}
	return link
}

/* ───────── /list_links ───────── */

func (b *Bot) handleListLinks(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	links, err := b.links.ListByDestination(ctx, i.ChannelID)
	if err != nil {
		slog.Error("list_links failed", slog.Any("error", err))
		respond(s, i, "Something went wrong, try again later.")
		return
	}
	if opt, ok := optionMap(i)["platform"]; ok {
		links = filterByPlatform(links, opt.StringValue())
	}
	if len(links) == 0 {
		respond(s, i, "Nothing is watched in this channel yet. Use /add_link to start.")
		return
	}
	respondEmbed(s, i, linksEmbed(links))
}

func filterByPlatform(links []*entity.ChannelLink, platform string) []*entity.ChannelLink {
	filtered := links[:0]
	for _, link := range links {
		if link.Platform == platform {
			filtered = append(filtered, link)
		}
	}
	return filtered
}

func linksEmbed(links []*entity.ChannelLink) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(links))
	for _, link := range links {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  link.DisplayName,
			Value: fmt.Sprintf("%s `%s`\npings: %s", link.Platform, link.SourceID, pingDescription(link)),
		})
	}
	return &discordgo.MessageEmbed{
		Title:  "Watched sources",
		Color:  listEmbedColor,
		Fields: fields,
	}
}

func pingDescription(link *entity.ChannelLink) string {
	switch {
	case !link.ShouldMention:
		return "off"
	case link.RoleMentionID != nil && *link.RoleMentionID != "":
		return fmt.Sprintf("<@&%s>", *link.RoleMentionID)
	default:
		return "@everyone"
	}
}

/* ───────── /remove_link ───────── */

func (b *Bot) handleRemoveLink(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	opts := optionMap(i)
	platform := opts["platform"].StringValue()
	sourceID := strings.TrimSpace(opts["source_id"].StringValue())

	removed, err := b.links.Delete(ctx, platform, sourceID, i.ChannelID)
	if err != nil {
		slog.Error("remove_link failed", slog.Any("error", err))
		respond(s, i, "Something went wrong, try again later.")
		return
	}
	if !removed {
		respond(s, i, fmt.Sprintf("This channel does not watch %s `%s`.", platform, sourceID))
		return
	}

	slog.Info("channel link removed",
		slog.String("platform", platform),
		slog.String("source_id", sourceID),
		slog.String("discord_channel_id", i.ChannelID))
	respond(s, i, fmt.Sprintf("Stopped watching %s `%s`.", platform, sourceID))
}

/* ───────── /account_age ───────── */

func (b *Bot) handleAccountAge(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	userID := opts["user"].Value.(string)

	msg, err := accountAgeMessage(userID)
	if err != nil {
		respond(s, i, "That does not look like a valid account.")
		return
	}
	respond(s, i, msg)
}

// accountAgeMessage derives the creation time from the snowflake id and
// renders it as a Discord timestamp, so each viewer sees their own zone.
func accountAgeMessage(userID string) (string, error) {
	createdAt, err := discordgo.SnowflakeTimestamp(userID)
	if err != nil {
		return "", fmt.Errorf("accountAgeMessage: %w", err)
	}
	return fmt.Sprintf("<@%s> was created on <t:%d:f> (<t:%d:R>).",
		userID, createdAt.Unix(), createdAt.Unix()), nil
}
