package service

import (
	"context"
	"fmt"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

// ChannelAuthorizer decides whether a channel belongs to a required category.
// Results are never cached: category assignment can change between calls.
type ChannelAuthorizer struct {
	channels outbound.ChannelFetcher
}

// NewChannelAuthorizer creates a ChannelAuthorizer backed by channels.
func NewChannelAuthorizer(channels outbound.ChannelFetcher) *ChannelAuthorizer {
	return &ChannelAuthorizer{channels: channels}
}

// ResolveCategory returns the category that governs channelID. For thread
// channels with a parent that is the parent's own category, which costs a
// second lookup that can only start after the first returns. An empty result
// means no category.
func (a *ChannelAuthorizer) ResolveCategory(ctx context.Context, channelID string) (string, error) {
	ch, err := a.channels.FetchChannel(ctx, channelID)
	if err != nil {
		return "", fmt.Errorf("fetching channel %s: %w", channelID, err)
	}

	if ch.IsThread() && ch.ParentID != "" {
		parent, err := a.channels.FetchChannel(ctx, ch.ParentID)
		if err != nil {
			return "", fmt.Errorf("fetching parent channel %s: %w", ch.ParentID, err)
		}
		return parent.ParentID, nil
	}

	// A non-thread channel's parent is its category.
	return ch.ParentID, nil
}

// Authorize resolves the channel's category and compares it with
// requiredCategoryID. A channel without a category never matches.
func (a *ChannelAuthorizer) Authorize(ctx context.Context, channelID, requiredCategoryID string) (model.AuthorizationOutcome, error) {
	category, err := a.ResolveCategory(ctx, channelID)
	if err != nil {
		return model.AuthorizationOutcome{}, err
	}
	if category == "" || category != requiredCategoryID {
		return model.Denied(model.ReasonCategoryMismatch, category), nil
	}
	return model.Allowed(category), nil
}
