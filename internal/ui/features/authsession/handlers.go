// Package authsession establishes and clears the session cookie. The
// upstream identity provider hands the user id to this endpoint; from
// then on the cookie is the only identity the API trusts.
package authsession

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/slahq/sla/internal/auth"
	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/ui/features/common"
)

// Handlers provides the session endpoints.
type Handlers struct {
	sessions *auth.Sessions
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *auth.Sessions, logger *slog.Logger) *Handlers {
	return &Handlers{sessions: sessions, logger: logger.With("component", "auth")}
}

type establishRequest struct {
	UserID string `json:"user_id"`
}

// Establish writes the caller's identity into the session cookie.
func (h *Handlers) Establish(w http.ResponseWriter, r *http.Request) {
	var req establishRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	if req.UserID == "" {
		common.WriteError(w, h.logger, fmt.Errorf("user_id is required: %w", core.ErrValidation))
		return
	}

	if err := h.sessions.Establish(w, r, req.UserID); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	h.logger.Info("session established", slog.String("user", req.UserID))
	common.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "user_id": req.UserID})
}

// Clear removes the session cookie.
func (h *Handlers) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
