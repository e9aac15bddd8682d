// Package exceptionlist serves the caller's open exception queue and
// resolution endpoint.
package exceptionlist

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slahq/sla/internal/auth"
	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/exceptions"
	"github.com/slahq/sla/internal/scope"
	"github.com/slahq/sla/internal/ui/features/common"
)

// Handlers provides the exception endpoints.
type Handlers struct {
	service *exceptions.Service
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *exceptions.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger.With("component", "exceptions")}
}

// exceptionView is the JSON shape of an exception as reported to
// clients.
type exceptionView struct {
	ID         string             `json:"id"`
	Type       core.ExceptionType `json:"type"`
	Severity   core.Severity      `json:"severity"`
	Message    string             `json:"message"`
	Scope      core.Scope         `json:"scope"`
	DetectedAt string             `json:"detected_at"`
}

func viewsOf(list []*core.Exception) []exceptionView {
	views := make([]exceptionView, len(list))
	for i, ex := range list {
		views[i] = exceptionView{
			ID:         ex.ID,
			Type:       ex.Type,
			Severity:   ex.Severity,
			Message:    ex.Message,
			Scope:      ex.Scope,
			DetectedAt: ex.DetectedAt.UTC().Format(time.RFC3339),
		}
	}
	return views
}

type listResponse struct {
	OK         bool            `json:"ok"`
	Exceptions []exceptionView `json:"exceptions"`
}

// List returns the caller's open exceptions, narrowed by the scope in
// the query string. A caller with none gets an empty list.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	sc := scope.Parse(r.URL.Query())
	list, err := h.service.List(r.Context(), callerID, &sc.Scope)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, listResponse{OK: true, Exceptions: viewsOf(list)})
}

type resolveRequest struct {
	Type core.ExceptionType `json:"type"`
	Note string             `json:"note"`
}

// Resolve marks one of the caller's exceptions resolved.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	var req resolveRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Resolve(r.Context(), callerID, id, req.Type, req.Note); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}
