package bot

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"postwatch/internal/domain/entity"
)

func commandInteraction(channelID string, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: channelID,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    "add_link",
				Options: opts,
			},
		},
	}
}

func strOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func TestLinkFromOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		i := commandInteraction("555", []*discordgo.ApplicationCommandInteractionDataOption{
			strOption("platform", "Reddit"),
			strOption("source_id", "  golang "),
			strOption("display_name", "r/golang"),
		})

		link := linkFromOptions(i)
		if link.Platform != entity.PlatformReddit || link.SourceID != "golang" {
			t.Errorf("link = %+v, want trimmed Reddit/golang", link)
		}
		if link.DiscordChannelID != "555" {
			t.Errorf("channel = %q, want the invoking channel", link.DiscordChannelID)
		}
		if !link.ShouldMention || link.RoleMentionID != nil {
			t.Errorf("link = %+v, want mention on and no role by default", link)
		}
	})

	t.Run("explicit mention and role", func(t *testing.T) {
		i := commandInteraction("555", []*discordgo.ApplicationCommandInteractionDataOption{
			strOption("platform", "YouTube"),
			strOption("source_id", "UUabc"),
			strOption("display_name", "SomeCreator"),
			{
				Name:  "should_ping",
				Type:  discordgo.ApplicationCommandOptionBoolean,
				Value: false,
			},
			{
				Name:  "mention_role",
				Type:  discordgo.ApplicationCommandOptionRole,
				Value: "9876",
			},
		})

		link := linkFromOptions(i)
		if link.ShouldMention {
			t.Error("ShouldMention = true, want false")
		}
		if link.RoleMentionID == nil || *link.RoleMentionID != "9876" {
			t.Errorf("RoleMentionID = %v, want 9876", link.RoleMentionID)
		}
	})
}

func TestFilterByPlatform(t *testing.T) {
	links := []*entity.ChannelLink{
		{SourceID: "golang", Platform: entity.PlatformReddit},
		{SourceID: "UUabc", Platform: entity.PlatformYouTube},
		{SourceID: "programming", Platform: entity.PlatformReddit},
	}

	got := filterByPlatform(links, entity.PlatformReddit)
	if len(got) != 2 || got[0].SourceID != "golang" || got[1].SourceID != "programming" {
		t.Errorf("filterByPlatform() = %v, want the two Reddit links", got)
	}
}

func TestLinksEmbed(t *testing.T) {
	role := "9876"
	links := []*entity.ChannelLink{
		{DisplayName: "r/golang", Platform: "Reddit", SourceID: "golang", ShouldMention: true},
		{DisplayName: "SomeCreator", Platform: "YouTube", SourceID: "UUabc", ShouldMention: true, RoleMentionID: &role},
		{DisplayName: "quiet", Platform: "Reddit", SourceID: "quiet", ShouldMention: false},
	}

	embed := linksEmbed(links)
	if embed.Color != listEmbedColor {
		t.Errorf("color = %#x, want %#x", embed.Color, listEmbedColor)
	}
	if len(embed.Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[0].Value, "@everyone") {
		t.Errorf("field 0 = %q, want @everyone ping", embed.Fields[0].Value)
	}
	if !strings.Contains(embed.Fields[1].Value, "<@&9876>") {
		t.Errorf("field 1 = %q, want role ping", embed.Fields[1].Value)
	}
	if !strings.Contains(embed.Fields[2].Value, "off") {
		t.Errorf("field 2 = %q, want pings off", embed.Fields[2].Value)
	}
}

func TestAccountAgeMessage(t *testing.T) {
	// Snowflake epoch starts 2015-01-01; this id encodes a 2015 timestamp.
	msg, err := accountAgeMessage("81384788765712384")
	if err != nil {
		t.Fatalf("accountAgeMessage() err = %v", err)
	}
	if !strings.Contains(msg, "<t:") || !strings.Contains(msg, "<@81384788765712384>") {
		t.Errorf("message = %q, want user mention and timestamp markers", msg)
	}

	if _, err := accountAgeMessage("not-a-snowflake"); err == nil {
		t.Fatal("accountAgeMessage() err = nil, want parse error")
	}
}
