package bot

import "github.com/bwmarrin/discordgo"

const maxLinksPerPlatformChannel = 12

// commandDefinitions returns every slash command the bot registers. The
// set is pushed with a bulk overwrite on startup, so removing an entry
// here also removes the command from Discord.
func commandDefinitions() []*discordgo.ApplicationCommand {
	platformChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "YouTube", Value: "YouTube"},
		{Name: "Reddit", Value: "Reddit"},
	}

	manageChannels := int64(discordgo.PermissionManageChannels)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "add_link",
			Description:              "Watch a YouTube playlist or subreddit in this channel",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "platform",
					Description: "Where the content lives",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices:     platformChoices,
				},
				{
					Name:        "source_id",
					Description: "Uploads playlist ID or subreddit name",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "display_name",
					Description: "Name shown in notifications",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "should_ping",
					Description: "Ping the channel on new posts (default true)",
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Required:    false,
				},
				{
					Name:        "mention_role",
					Description: "Ping this role instead of everyone",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    false,
				},
			},
		},
		{
			Name:        "list_links",
			Description: "Show everything watched in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "platform",
					Description: "Only show this platform",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
					Choices:     platformChoices,
				},
			},
		},
		{
			Name:                     "remove_link",
			Description:              "Stop watching a source in this channel",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "platform",
					Description: "The source's platform",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices:     platformChoices,
				},
				{
					Name:        "source_id",
					Description: "Uploads playlist ID or subreddit name",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "account_age",
			Description: "Show when a Discord account was created",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "The account to inspect",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
	}
}
