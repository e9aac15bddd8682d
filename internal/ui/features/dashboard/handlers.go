// Package dashboard serves the per-user dashboard layout.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/slahq/sla/internal/auth"
	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/layout"
	"github.com/slahq/sla/internal/ui/features/common"
)

// Handlers provides the dashboard layout endpoints.
type Handlers struct {
	storage layout.Storage
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(storage layout.Storage, logger *slog.Logger) *Handlers {
	return &Handlers{storage: storage, logger: logger.With("component", "dashboard")}
}

type layoutResponse struct {
	OK    bool              `json:"ok"`
	Cards []core.CardConfig `json:"cards"`
}

// GetLayout returns the caller's layout. A caller without one, or with
// a corrupt one, gets the default list; this endpoint never fails.
func (h *Handlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	cards := layout.Load(r.Context(), h.storage, callerID)
	common.WriteJSON(w, http.StatusOK, layoutResponse{OK: true, Cards: cards})
}

type putLayoutRequest struct {
	Cards []core.CardConfig `json:"cards"`
}

// PutLayout replaces the caller's layout. Unknown card keys are dropped
// and missing cards appended before the list is persisted, so the
// response reflects what was actually stored.
func (h *Handlers) PutLayout(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	var req putLayoutRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	if err := layout.Save(r.Context(), h.storage, callerID, req.Cards); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	cards := layout.Load(r.Context(), h.storage, callerID)
	h.logger.Info("layout saved", slog.String("owner", callerID), slog.Int("cards", len(cards)))
	common.WriteJSON(w, http.StatusOK, layoutResponse{OK: true, Cards: cards})
}
