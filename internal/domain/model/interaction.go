package model

// InteractionKind is the closed set of interaction kinds the dispatcher understands.
type InteractionKind int

const (
	InteractionOther InteractionKind = iota
	InteractionPing
	InteractionApplicationCommand
)

func (k InteractionKind) String() string {
	switch k {
	case InteractionPing:
		return "ping"
	case InteractionApplicationCommand:
		return "application_command"
	case InteractionOther:
		return "other"
	}
	return "other"
}

// Interaction is a verified, normalized inbound interaction. It lives for one request.
type Interaction struct {
	ID          string
	Kind        InteractionKind
	RawType     int
	CommandName string
	// ChannelID is the canonical invoking channel, whichever payload shape carried it.
	ChannelID string
	GuildID   string
	UserID    string
	Options   map[string]string
}

// Option returns the string value of a named command option.
func (i Interaction) Option(name string) (string, bool) {
	v, ok := i.Options[name]
	return v, ok
}
