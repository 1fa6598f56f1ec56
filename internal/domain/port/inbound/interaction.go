package inbound

import (
	"context"

	"github.com/jonny/dispatchbot/internal/domain/model"
)

// InteractionPort handles verified interactions from the chat platform.
//
// Dispatch returns exactly one terminal outcome: either a reply, or an
// *apierror.Error describing a protocol error (unknown interaction type or
// command) that the transport renders as an HTTP error.
type InteractionPort interface {
	Dispatch(ctx context.Context, in model.Interaction) (model.Reply, error)
}

// CommandHandler answers a single application command. Handlers convert their
// own failures into replies; they never return errors to the transport.
type CommandHandler interface {
	Handle(ctx context.Context, in model.Interaction) model.Reply
}

// CommandHandlerFunc adapts a function to CommandHandler.
type CommandHandlerFunc func(ctx context.Context, in model.Interaction) model.Reply

func (f CommandHandlerFunc) Handle(ctx context.Context, in model.Interaction) model.Reply {
	return f(ctx, in)
}
