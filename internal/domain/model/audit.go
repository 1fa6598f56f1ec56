package model

import "time"

type AuditEventType string

const (
	AuditInteractionReceived AuditEventType = "interaction.received"
	AuditCommandInvoked      AuditEventType = "command.invoked"
	AuditCommandFailed       AuditEventType = "command.failed"
	AuditDownloadGranted     AuditEventType = "download.granted"
	AuditDownloadDenied      AuditEventType = "download.denied"
)

type AuditLog struct {
	ID            string            `json:"id"`
	EventType     AuditEventType    `json:"event_type"`
	InteractionID string            `json:"interaction_id"`
	Command       string            `json:"command"`
	Actor         string            `json:"actor"`
	ChannelID     string            `json:"channel_id"`
	Description   string            `json:"description"`
	Metadata      map[string]string `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
}

func NewAuditLog(eventType AuditEventType, in Interaction, description string) AuditLog {
	return AuditLog{
		ID:            generateID(),
		EventType:     eventType,
		InteractionID: in.ID,
		Command:       in.CommandName,
		Actor:         in.UserID,
		ChannelID:     in.ChannelID,
		Description:   description,
		Metadata:      make(map[string]string),
		CreatedAt:     time.Now().UTC(),
	}
}

func (a AuditLog) WithMetadata(key, value string) AuditLog {
	meta := make(map[string]string, len(a.Metadata)+1)
	for k, v := range a.Metadata {
		meta[k] = v
	}
	meta[key] = value
	a.Metadata = meta
	return a
}
