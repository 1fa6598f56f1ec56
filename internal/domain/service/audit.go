package service

import (
	"context"
	"log/slog"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

// auditor writes audit entries on a best-effort basis. Failures are logged and
// never change the reply sent to the user.
type auditor struct {
	repo   outbound.AuditRepository
	logger *slog.Logger
}

func (a auditor) record(ctx context.Context, entry model.AuditLog) {
	if a.repo == nil {
		return
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Warn("failed to write audit log",
			"eventType", entry.EventType,
			"interactionID", entry.InteractionID,
			"error", err,
		)
	}
}
