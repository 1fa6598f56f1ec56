package noop

import (
	"context"
	"log/slog"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

// AuditRepo is a no-op audit repository that logs entries instead of storing them.
// Used when the database is disabled.
type AuditRepo struct {
	logger *slog.Logger
}

var _ outbound.AuditRepository = (*AuditRepo)(nil)

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(logger *slog.Logger) *AuditRepo {
	return &AuditRepo{logger: logger}
}

func (r *AuditRepo) Create(_ context.Context, log model.AuditLog) error {
	r.logger.Debug("noop: audit",
		"eventType", log.EventType,
		"interactionID", log.InteractionID,
		"command", log.Command,
		"actor", log.Actor,
		"description", log.Description,
	)
	return nil
}

func (r *AuditRepo) List(_ context.Context, _ outbound.AuditFilter, page outbound.PageRequest) (outbound.PageResult[model.AuditLog], error) {
	return outbound.PageResult[model.AuditLog]{Page: page.Page, Size: page.Size}, nil
}
