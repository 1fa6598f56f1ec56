package service

import (
	"context"
	"log/slog"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/inbound"
	"github.com/jonny/dispatchbot/pkg/apierror"
)

// Dispatcher classifies verified interactions and hands application commands
// to the router.
type Dispatcher struct {
	router *Router
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher that routes commands through router.
func NewDispatcher(router *Router, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{router: router, logger: logger}
}

var _ inbound.InteractionPort = (*Dispatcher)(nil)

// Dispatch implements inbound.InteractionPort.
func (d *Dispatcher) Dispatch(ctx context.Context, in model.Interaction) (model.Reply, error) {
	switch in.Kind {
	case model.InteractionPing:
		return model.Pong(), nil
	case model.InteractionApplicationCommand:
		d.router.audit.record(ctx, model.NewAuditLog(model.AuditInteractionReceived, in, "application command /"+in.CommandName))
		return d.router.Route(ctx, in)
	case model.InteractionOther:
	}

	d.logger.Error("unknown interaction type", "type", in.RawType, "interactionID", in.ID)
	return model.Reply{}, apierror.BadRequest("unknown interaction type")
}
