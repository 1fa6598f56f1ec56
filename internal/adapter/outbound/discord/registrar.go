package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/service"
)

// Commands returns the slash command definitions served by the bot.
func Commands() []*discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(model.Choices()))
	for _, c := range model.Choices() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Label(),
			Value: string(c),
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "test",
			Description: "Basic command",
			Type:        discordgo.ChatApplicationCommand,
		},
		{
			Name:        "challenge",
			Description: "Challenge to a match of rock paper scissors",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        service.ChallengeOption,
					Description: "Pick your object",
					Required:    true,
					Choices:     choices,
				},
			},
		},
		{
			Name:        "download",
			Description: "Get the download link",
			Type:        discordgo.ChatApplicationCommand,
		},
	}
}

// RegisterCommands overwrites the application's global commands with cmds
// and returns the names the platform accepted.
func (c *Client) RegisterCommands(ctx context.Context, cmds []*discordgo.ApplicationCommand) ([]string, error) {
	if c.appID == "" {
		return nil, errors.New("discord app id is required to register commands")
	}

	created, err := c.session.ApplicationCommandBulkOverwrite(c.appID, "", cmds, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord PUT application commands: %w", err)
	}

	names := make([]string, 0, len(created))
	for _, cmd := range created {
		names = append(names, cmd.Name)
	}
	return names, nil
}
