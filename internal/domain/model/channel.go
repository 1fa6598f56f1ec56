package model

import "github.com/bwmarrin/discordgo"

// Channel is the subset of a platform channel needed for category checks.
// It is fetched on demand and never cached.
type Channel struct {
	ID       string
	Type     discordgo.ChannelType
	ParentID string
}

// IsThread reports whether the channel is a thread variant, whose category
// has to be resolved through its parent channel.
func (c Channel) IsThread() bool {
	switch c.Type {
	case discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildForum:
		return true
	default:
		return false
	}
}

type DenyReason string

const (
	ReasonNone                  DenyReason = ""
	ReasonMissingConfigURL      DenyReason = "missing_config_url"
	ReasonMissingConfigCategory DenyReason = "missing_config_category"
	ReasonCategoryMismatch      DenyReason = "category_mismatch"
)

// AuthorizationOutcome is derived per invocation and never persisted.
type AuthorizationOutcome struct {
	Authorized bool
	Reason     DenyReason
	// CategoryID is the category the channel resolved to, empty when it has none.
	CategoryID string
}

func Allowed(categoryID string) AuthorizationOutcome {
	return AuthorizationOutcome{Authorized: true, CategoryID: categoryID}
}

func Denied(reason DenyReason, categoryID string) AuthorizationOutcome {
	return AuthorizationOutcome{Authorized: false, Reason: reason, CategoryID: categoryID}
}
