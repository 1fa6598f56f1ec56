package interactions

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/dispatchbot/internal/domain/model"
)

// interactionPayload is the partial wire shape of an inbound interaction.
// See https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object
type interactionPayload struct {
	ID        string       `json:"id"`
	Type      int          `json:"type"`
	Data      *commandData `json:"data,omitempty"`
	GuildID   string       `json:"guild_id"`
	ChannelID string       `json:"channel_id"`
	Channel   *channelRef  `json:"channel,omitempty"`
	Member    *memberRef   `json:"member,omitempty"`
	User      *userRef     `json:"user,omitempty"`
}

type commandData struct {
	Name    string          `json:"name"`
	Options []commandOption `json:"options"`
}

type commandOption struct {
	Name  string          `json:"name"`
	Type  int             `json:"type"`
	Value json.RawMessage `json:"value"`
}

type channelRef struct {
	ID string `json:"id"`
}

type memberRef struct {
	User *userRef `json:"user"`
}

type userRef struct {
	ID string `json:"id"`
}

// decodeInteraction parses a verified body into the domain interaction.
func decodeInteraction(r io.Reader) (model.Interaction, error) {
	var p interactionPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return model.Interaction{}, fmt.Errorf("decoding interaction: %w", err)
	}
	return p.toModel(), nil
}

func (p interactionPayload) toModel() model.Interaction {
	in := model.Interaction{
		ID:        p.ID,
		Kind:      kindFromWire(p.Type),
		RawType:   p.Type,
		ChannelID: p.channelID(),
		GuildID:   p.GuildID,
		UserID:    p.userID(),
	}
	if p.Data != nil {
		in.CommandName = p.Data.Name
		if len(p.Data.Options) > 0 {
			in.Options = make(map[string]string, len(p.Data.Options))
			for _, o := range p.Data.Options {
				in.Options[o.Name] = optionValue(o.Value)
			}
		}
	}
	return in
}

// channelID accepts both shapes the platform has used: a nested channel
// object, and the older flat channel_id field. The nested form wins.
func (p interactionPayload) channelID() string {
	if p.Channel != nil && p.Channel.ID != "" {
		return p.Channel.ID
	}
	return p.ChannelID
}

// userID prefers the guild member's user and falls back to the DM user.
func (p interactionPayload) userID() string {
	if p.Member != nil && p.Member.User != nil {
		return p.Member.User.ID
	}
	if p.User != nil {
		return p.User.ID
	}
	return ""
}

func kindFromWire(t int) model.InteractionKind {
	switch t {
	case int(discordgo.InteractionPing):
		return model.InteractionPing
	case int(discordgo.InteractionApplicationCommand):
		return model.InteractionApplicationCommand
	default:
		return model.InteractionOther
	}
}

func optionValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
