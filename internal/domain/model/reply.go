package model

type ReplyKind int

const (
	ReplyPong ReplyKind = iota + 1
	ReplyMessage
)

type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityEphemeral
)

// Component is a renderable reply element. The set is closed: TextDisplay,
// ActionRow and LinkButton.
type Component interface {
	component()
}

type TextDisplay struct {
	Content string
}

type ActionRow struct {
	Buttons []LinkButton
}

type LinkButton struct {
	Label string
	URL   string
}

func (TextDisplay) component() {}
func (ActionRow) component()   {}
func (LinkButton) component()  {}

// Message is the reply envelope for a chat message.
type Message struct {
	Visibility Visibility
	Components []Component
}

// Reply is the single terminal outcome of a dispatched interaction.
type Reply struct {
	Kind    ReplyKind
	Message Message
}

func Pong() Reply {
	return Reply{Kind: ReplyPong}
}

// TextReply is visible to everyone in the channel.
func TextReply(content string) Reply {
	return Reply{
		Kind: ReplyMessage,
		Message: Message{
			Visibility: VisibilityPublic,
			Components: []Component{TextDisplay{Content: content}},
		},
	}
}

// EphemeralTextReply is visible only to the invoking user.
func EphemeralTextReply(content string) Reply {
	r := TextReply(content)
	r.Message.Visibility = VisibilityEphemeral
	return r
}

// LinkReply is a public text followed by a row holding one link button.
func LinkReply(content, label, url string) Reply {
	r := TextReply(content)
	r.Message.Components = append(r.Message.Components, ActionRow{
		Buttons: []LinkButton{{Label: label, URL: url}},
	})
	return r
}

// Ephemeral reports whether the reply is a message only the invoker can see.
func (r Reply) Ephemeral() bool {
	return r.Kind == ReplyMessage && r.Message.Visibility == VisibilityEphemeral
}

// Text joins the contents of all top-level text components.
func (r Reply) Text() string {
	var out string
	for _, c := range r.Message.Components {
		if t, ok := c.(TextDisplay); ok {
			if out != "" {
				out += "\n"
			}
			out += t.Content
		}
	}
	return out
}

// Buttons returns every link button in the reply, in order.
func (r Reply) Buttons() []LinkButton {
	var out []LinkButton
	for _, c := range r.Message.Components {
		switch v := c.(type) {
		case ActionRow:
			out = append(out, v.Buttons...)
		case LinkButton:
			out = append(out, v)
		}
	}
	return out
}
