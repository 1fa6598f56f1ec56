package interactions

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jonny/dispatchbot/internal/adapter/inbound/interactions/template"
	"github.com/jonny/dispatchbot/internal/domain/port/inbound"
	"github.com/jonny/dispatchbot/pkg/apierror"
)

// Handler serves the interactions endpoint. It expects the signature to have
// been verified by middleware before it runs.
type Handler struct {
	port   inbound.InteractionPort
	logger *slog.Logger
}

// NewHandler creates a Handler that dispatches to port.
func NewHandler(port inbound.InteractionPort, logger *slog.Logger) *Handler {
	return &Handler{port: port, logger: logger}
}

// ServeHTTP decodes the interaction, dispatches it and writes exactly one
// response: the encoded reply, or a {"error": ...} body for protocol errors.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInteraction(r.Body)
	if err != nil {
		h.logger.Warn("invalid interaction payload", "error", err)
		writeError(w, apierror.BadRequest("invalid JSON payload"))
		return
	}

	reply, err := h.port.Dispatch(r.Context(), in)
	if err != nil {
		apiErr, ok := apierror.From(err)
		if !ok {
			h.logger.Error("dispatch failed", "interactionID", in.ID, "error", err)
		}
		writeError(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, template.BuildResponse(reply))
}

// HealthHandler returns an http.HandlerFunc for the /health endpoint.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeError(w http.ResponseWriter, e *apierror.Error) {
	writeJSON(w, e.Code, template.ErrorBody(e.Message))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
