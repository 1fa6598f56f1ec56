package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

// ChallengeOption is the name of the command option carrying the player's object.
const ChallengeOption = "object"

// ChallengeCommand opens a rock/paper/scissors game keyed by the interaction id.
type ChallengeCommand struct {
	games  outbound.GameStore
	logger *slog.Logger
}

func NewChallengeCommand(games outbound.GameStore, logger *slog.Logger) *ChallengeCommand {
	return &ChallengeCommand{games: games, logger: logger}
}

func (c *ChallengeCommand) Handle(ctx context.Context, in model.Interaction) model.Reply {
	raw, _ := in.Option(ChallengeOption)
	choice, err := model.ParseChoice(raw)
	if err != nil {
		return model.EphemeralTextReply(fmt.Sprintf("Unknown object %q: pick rock, paper or scissors.", raw))
	}

	game := model.NewGame(in.ID, in.UserID, choice)
	if err := c.games.Put(ctx, in.ID, game); err != nil {
		c.logger.Error("failed to store game", "interactionID", in.ID, "error", err)
		return model.EphemeralTextReply(msgCommandFailed)
	}

	return model.TextReply(fmt.Sprintf("Rock papers scissors challenge from <@%s>", in.UserID))
}
