// Package bot owns the Discord session and the admin slash commands for
// managing channel links.
package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"postwatch/internal/repository"
)

// Bot wraps the discordgo session and dispatches interactions.
type Bot struct {
	session  *discordgo.Session
	links    repository.ChannelLinkRepository
	handlers map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// New creates a bot with an unopened session.
func New(token string, links repository.ChannelLinkRepository) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("New: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{session: session, links: links}
	b.handlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"add_link":    b.handleAddLink,
		"list_links":  b.handleListLinks,
		"remove_link": b.handleRemoveLink,
		"account_age": b.handleAccountAge,
	}
	return b, nil
}

// Session exposes the underlying session for the messenger.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start opens the gateway connection and registers the slash commands.
// The bulk overwrite replaces whatever set a previous run left behind, so
// restarting is safe.
func (b *Bot) Start() error {
	b.session.AddHandler(b.dispatch)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("Start: open gateway: %w", err)
	}

	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, "", commandDefinitions()); err != nil {
		_ = b.session.Close()
		return fmt.Errorf("Start: register commands: %w", err)
	}

	slog.Info("bot connected",
		slog.String("user", b.session.State.User.Username),
		slog.Int("commands", len(commandDefinitions())))
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) dispatch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	handler, ok := b.handlers[name]
	if !ok {
		slog.Warn("unknown command", slog.String("command", name))
		return
	}
	handler(s, i)
}
