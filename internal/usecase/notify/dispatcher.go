// Package notify turns newly discovered posts into Discord messages.
// It owns the message formats, the mention policy, and the outbound rate
// limit; actual delivery is behind the Messenger interface.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"postwatch/internal/domain/entity"
	"postwatch/internal/usecase/check"
)

// Messenger delivers a single message to a Discord channel. Implementations
// must honor the mention policy; content may name an audience that the
// policy forbids pinging.
type Messenger interface {
	SendMessage(ctx context.Context, channelID, content string, mention Mention) error
}

// Dispatcher implements check.Dispatcher. One instance is shared by all
// checkers, so the rate limiter below caps the bot's total send rate.
type Dispatcher struct {
	messenger Messenger
	limiter   *rate.Limiter
	debug     bool
}

// NewDispatcher builds a dispatcher. Discord tolerates short bursts but
// throttles sustained traffic, so sends are paced at 2 per second with a
// small burst allowance.
func NewDispatcher(messenger Messenger, debug bool) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		limiter:   rate.NewLimiter(rate.Limit(2), 3),
		debug:     debug,
	}
}

// Dispatch formats and sends the notification for one new item.
func (d *Dispatcher) Dispatch(ctx context.Context, link *entity.ChannelLink, item check.Item) error {
	requestID := uuid.New().String()

	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %v", check.ErrDelivery, err)
	}

	content := composeMessage(link, item)
	mention := resolveMention(link, d.debug)

	if err := d.messenger.SendMessage(ctx, link.DiscordChannelID, content, mention); err != nil {
		return fmt.Errorf("%w: %v", check.ErrDelivery, err)
	}

	slog.Default().Info("notification sent",
		slog.String("request_id", requestID),
		slog.String("platform", link.Platform),
		slog.String("source_id", link.SourceID),
		slog.String("discord_channel_id", link.DiscordChannelID),
		slog.String("item_id", item.ID))
	return nil
}

// composeMessage renders the per-platform announcement body.
func composeMessage(link *entity.ChannelLink, item check.Item) string {
	target := mentionText(link)
	switch link.Platform {
	case entity.PlatformYouTube:
		return fmt.Sprintf("Hey %s, **%s** has released a new video!\n%s",
			target, link.DisplayName, item.URL)
	default:
		author := item.Author
		if author == "" {
			author = "<unknown>"
		}
		category := item.Category
		if category == "" {
			category = link.DisplayName
		}
		return fmt.Sprintf("Hey %s, user **%s** has posted on **%s**!\n%s",
			target, author, category, item.URL)
	}
}
