// Package messenger delivers notifications through a Discord bot session.
package messenger

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"postwatch/internal/usecase/notify"
)

// Discord implements notify.Messenger on a shared discordgo session. The
// mention policy is enforced with allowed-mentions, so message content can
// safely name an audience it is not permitted to ping.
type Discord struct {
	session *discordgo.Session
}

// NewDiscord wraps an already-opened session.
func NewDiscord(session *discordgo.Session) *Discord {
	return &Discord{session: session}
}

// SendMessage posts content to the given channel under the mention policy.
func (d *Discord) SendMessage(ctx context.Context, channelID, content string, mention notify.Mention) error {
	_, err := d.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: allowedMentions(mention),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("SendMessage: channel %s: %w", channelID, err)
	}
	return nil
}

// allowedMentions maps the resolved policy onto Discord's allowed-mentions
// payload. An empty Parse list suppresses every ping in the content.
func allowedMentions(mention notify.Mention) *discordgo.MessageAllowedMentions {
	switch mention.Kind {
	case notify.MentionEveryone:
		return &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone},
		}
	case notify.MentionRole:
		return &discordgo.MessageAllowedMentions{
			Roles: []string{mention.RoleID},
		}
	default:
		return &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		}
	}
}
