package outbound

import (
	"context"

	"github.com/jonny/dispatchbot/internal/domain/model"
)

// ChannelFetcher looks up channels on the platform's REST API. Non-success
// responses are returned as errors.
type ChannelFetcher interface {
	FetchChannel(ctx context.Context, channelID string) (model.Channel, error)
}
