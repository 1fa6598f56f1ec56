package discord

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

// Config holds Discord REST client configuration.
type Config struct {
	BotToken string
	AppID    string
	Timeout  time.Duration
}

// Client is a REST-only Discord client. It never opens a gateway connection.
type Client struct {
	session *discordgo.Session
	appID   string
}

var _ outbound.ChannelFetcher = (*Client)(nil)

// NewClient creates a Client authenticated with the bot token.
func NewClient(cfg Config) (*Client, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	session.Client = &http.Client{Timeout: timeout}
	// Failed lookups surface to the caller once; no hidden retries.
	session.ShouldRetryOnRateLimit = false
	session.MaxRestRetries = 0

	return &Client{session: session, appID: cfg.AppID}, nil
}

// FetchChannel looks up a channel by id.
func (c *Client) FetchChannel(ctx context.Context, id string) (model.Channel, error) {
	ch, err := c.session.Channel(id, discordgo.WithContext(ctx))
	if err != nil {
		return model.Channel{}, fmt.Errorf("discord GET channel %s: %w", id, err)
	}
	return model.Channel{
		ID:       ch.ID,
		Type:     ch.Type,
		ParentID: ch.ParentID,
	}, nil
}
