package template

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jonny/dispatchbot/internal/domain/model"
)

const (
	// flagIsComponentsV2 marks a message whose body is made only of components.
	flagIsComponentsV2 discordgo.MessageFlags = 1 << 15

	componentTextDisplay discordgo.ComponentType = 10
)

// InteractionResponse is the reply envelope sent back on the interaction request.
type InteractionResponse struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data *ResponseData                     `json:"data,omitempty"`
}

type ResponseData struct {
	Flags      discordgo.MessageFlags `json:"flags"`
	Components []Component            `json:"components"`
}

// Component is the wire form of a text display, action row or button.
type Component struct {
	Type       discordgo.ComponentType `json:"type"`
	Content    string                  `json:"content,omitempty"`
	Components []Component             `json:"components,omitempty"`
	Style      discordgo.ButtonStyle   `json:"style,omitempty"`
	Label      string                  `json:"label,omitempty"`
	URL        string                  `json:"url,omitempty"`
}

// BuildResponse encodes a domain reply for the platform.
func BuildResponse(r model.Reply) InteractionResponse {
	if r.Kind == model.ReplyPong {
		return InteractionResponse{Type: discordgo.InteractionResponsePong}
	}

	flags := flagIsComponentsV2
	if r.Message.Visibility == model.VisibilityEphemeral {
		flags |= discordgo.MessageFlagsEphemeral
	}

	components := make([]Component, 0, len(r.Message.Components))
	for _, c := range r.Message.Components {
		components = append(components, buildComponent(c))
	}

	return InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &ResponseData{
			Flags:      flags,
			Components: components,
		},
	}
}

func buildComponent(c model.Component) Component {
	switch v := c.(type) {
	case model.TextDisplay:
		return Component{Type: componentTextDisplay, Content: v.Content}
	case model.ActionRow:
		buttons := make([]Component, 0, len(v.Buttons))
		for _, b := range v.Buttons {
			buttons = append(buttons, buildComponent(b))
		}
		return Component{Type: discordgo.ActionsRowComponent, Components: buttons}
	case model.LinkButton:
		return Component{
			Type:  discordgo.ButtonComponent,
			Style: discordgo.LinkButton,
			Label: v.Label,
			URL:   v.URL,
		}
	}
	panic("template: unhandled component type")
}

// ErrorBody is the minimal machine-readable body of a protocol error.
func ErrorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
