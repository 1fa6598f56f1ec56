package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonny/dispatchbot/internal/adapter/outbound/discord"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Overwrite the application's global slash commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			client, err := discord.NewClient(discord.Config{
				BotToken: cfg.Discord.BotToken,
				AppID:    cfg.Discord.AppID,
				Timeout:  cfg.Discord.RequestTimeout,
			})
			if err != nil {
				return fmt.Errorf("creating discord client: %w", err)
			}

			names, err := client.RegisterCommands(cmd.Context(), discord.Commands())
			if err != nil {
				return err
			}
			logger.Info("registered commands", "appID", cfg.Discord.AppID, "commands", names)
			return nil
		},
	}
}
