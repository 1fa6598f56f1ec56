package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/inbound"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
	"github.com/jonny/dispatchbot/pkg/apierror"
)

// Router maps command names to handlers. Handlers are registered once at
// startup; the map is read-only while requests are served.
type Router struct {
	handlers map[string]inbound.CommandHandler
	audit    auditor
	logger   *slog.Logger
}

// NewRouter creates an empty Router. audits may be nil.
func NewRouter(audits outbound.AuditRepository, logger *slog.Logger) *Router {
	return &Router{
		handlers: make(map[string]inbound.CommandHandler),
		audit:    auditor{repo: audits, logger: logger},
		logger:   logger,
	}
}

// Register binds name to h, replacing any previous handler.
func (r *Router) Register(name string, h inbound.CommandHandler) {
	r.handlers[name] = h
}

// Names returns the registered command names in sorted order.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Route runs the handler registered for the interaction's command name.
// A panicking handler is answered with the generic ephemeral failure reply.
func (r *Router) Route(ctx context.Context, in model.Interaction) (reply model.Reply, err error) {
	h, ok := r.handlers[in.CommandName]
	if !ok {
		r.logger.Error("unknown command", "command", in.CommandName, "interactionID", in.ID)
		return model.Reply{}, apierror.BadRequest("unknown command")
	}

	r.audit.record(ctx, model.NewAuditLog(model.AuditCommandInvoked, in,
		fmt.Sprintf("user %s invoked /%s", in.UserID, in.CommandName)))

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("command handler panicked",
				"command", in.CommandName,
				"interactionID", in.ID,
				"panic", rec,
			)
			r.audit.record(ctx, model.NewAuditLog(model.AuditCommandFailed, in, fmt.Sprintf("panic: %v", rec)))
			reply, err = model.EphemeralTextReply(msgCommandFailed), nil
		}
	}()

	return h.Handle(ctx, in), nil
}
