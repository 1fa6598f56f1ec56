package service

import (
	"context"
	"log/slog"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/inbound"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

const (
	msgMissingDownloadURL = "Configurazione mancante: DOWNLOAD_URL non impostato."
	msgMissingCategory    = "Configurazione mancante: ALLOWED_CATEGORY_ID non impostato."
	msgNotAuthorized      = "Questo comando può essere usato solo nella categoria autorizzata."
	msgCommandFailed      = "Si è verificato un errore durante l'esecuzione del comando."
	msgDownloadReady      = "Download pronto:"
	downloadButtonLabel   = "Scarica file"
)

// DownloadConfig is read once at startup. Empty fields are reported to the
// invoking user rather than rejected at boot.
type DownloadConfig struct {
	URL               string
	AllowedCategoryID string
}

// DownloadCommand replies with a download link, but only inside the allowed
// channel category.
type DownloadCommand struct {
	cfg        DownloadConfig
	authorizer *ChannelAuthorizer
	audit      auditor
	logger     *slog.Logger
}

// NewDownloadCommand creates the gated download handler. audits may be nil.
func NewDownloadCommand(cfg DownloadConfig, authorizer *ChannelAuthorizer, audits outbound.AuditRepository, logger *slog.Logger) *DownloadCommand {
	return &DownloadCommand{
		cfg:        cfg,
		authorizer: authorizer,
		audit:      auditor{repo: audits, logger: logger},
		logger:     logger,
	}
}

var _ inbound.CommandHandler = (*DownloadCommand)(nil)

// Handle checks configuration, then the channel category, and short-circuits
// on the first failure.
func (c *DownloadCommand) Handle(ctx context.Context, in model.Interaction) model.Reply {
	// Missing URL is announced publicly; every other failure is ephemeral.
	if c.cfg.URL == "" {
		c.deny(ctx, in, model.Denied(model.ReasonMissingConfigURL, ""))
		return model.TextReply(msgMissingDownloadURL)
	}
	if c.cfg.AllowedCategoryID == "" {
		c.deny(ctx, in, model.Denied(model.ReasonMissingConfigCategory, ""))
		return model.EphemeralTextReply(msgMissingCategory)
	}

	if in.ChannelID != "" {
		outcome, err := c.authorizer.Authorize(ctx, in.ChannelID, c.cfg.AllowedCategoryID)
		if err != nil {
			c.logger.Error("download command error",
				"interactionID", in.ID,
				"channelID", in.ChannelID,
				"error", err,
			)
			c.audit.record(ctx, model.NewAuditLog(model.AuditCommandFailed, in, err.Error()))
			return model.EphemeralTextReply(msgCommandFailed)
		}
		if !outcome.Authorized {
			c.deny(ctx, in, outcome)
			return model.EphemeralTextReply(msgNotAuthorized)
		}
	}

	c.audit.record(ctx, model.NewAuditLog(model.AuditDownloadGranted, in, "download link sent"))
	return model.LinkReply(msgDownloadReady, downloadButtonLabel, c.cfg.URL)
}

func (c *DownloadCommand) deny(ctx context.Context, in model.Interaction, outcome model.AuthorizationOutcome) {
	c.logger.Info("download denied",
		"interactionID", in.ID,
		"channelID", in.ChannelID,
		"reason", outcome.Reason,
		"categoryID", outcome.CategoryID,
	)
	c.audit.record(ctx, model.NewAuditLog(model.AuditDownloadDenied, in, string(outcome.Reason)).
		WithMetadata("categoryID", outcome.CategoryID))
}
