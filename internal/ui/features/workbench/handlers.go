// Package workbench exposes the run lifecycle endpoints shared by the
// forecast and cost-projection features. Each feature mounts the same
// handlers under its own prefix with its own run kind.
package workbench

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/slahq/sla/internal/auth"
	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/runs"
	"github.com/slahq/sla/internal/scope"
	"github.com/slahq/sla/internal/ui/features/common"
	"github.com/slahq/sla/internal/ui/notifier"
)

// Handlers provides the run lifecycle endpoints for one run kind.
type Handlers struct {
	kind     core.RunKind
	service  *runs.Service
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance for the given run kind.
func NewHandlers(kind core.RunKind, service *runs.Service, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	return &Handlers{
		kind:     kind,
		service:  service,
		notifier: notify,
		logger:   logger.With("component", string(kind)),
	}
}

// runView is the JSON shape of a run as reported to clients.
type runView struct {
	ID          string            `json:"id"`
	Kind        core.RunKind      `json:"kind"`
	Status      core.RunStatus    `json:"status"`
	Scope       core.Scope        `json:"scope"`
	Metrics     map[string]string `json:"metrics,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   string            `json:"created_at"`
	StartedAt   *string           `json:"started_at,omitempty"`
	CompletedAt *string           `json:"completed_at,omitempty"`
	PublishedAt *string           `json:"published_at,omitempty"`
}

func viewOf(run *core.Run) runView {
	stamp := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.UTC().Format(time.RFC3339)
		return &s
	}
	return runView{
		ID:          run.ID,
		Kind:        run.Kind,
		Status:      run.Status,
		Scope:       run.Scope,
		Metrics:     run.Metrics,
		Error:       run.Error,
		CreatedAt:   run.CreatedAt.UTC().Format(time.RFC3339),
		StartedAt:   stamp(run.StartedAt),
		CompletedAt: stamp(run.CompletedAt),
		PublishedAt: stamp(run.PublishedAt),
	}
}

type runResponse struct {
	OK  bool    `json:"ok"`
	Run runView `json:"run"`
}

type recomputeRequest struct {
	Owner string `json:"owner"`
}

// Recompute queues a run for the scope in the query string. The body
// may declare a scope owner; one that differs from the caller is
// rejected outright.
func (h *Handlers) Recompute(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	var req recomputeRequest
	if body, readErr := io.ReadAll(r.Body); readErr == nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			common.WriteError(w, h.logger, fmt.Errorf("invalid request body: %w", core.ErrValidation))
			return
		}
	}

	sc := scope.Parse(r.URL.Query())
	run, err := h.service.Recompute(r.Context(), callerID, h.kind, sc.Scope, req.Owner)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	common.WriteJSON(w, http.StatusAccepted, runResponse{OK: true, Run: viewOf(run)})
}

// Status reports one of the caller's runs.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	run, err := h.service.Status(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, runResponse{OK: true, Run: viewOf(run)})
}

// Publish promotes a succeeded run to published.
func (h *Handlers) Publish(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	id := chi.URLParam(r, "id")
	publishedAt, err := h.service.Publish(r.Context(), callerID, id)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"id":           id,
		"published_at": publishedAt.UTC().Format(time.RFC3339),
	})
}

// Export writes the latest finished results for the query-string scope
// to a CSV artifact and returns its URL.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	sc := scope.Parse(r.URL.Query())
	url, err := h.service.Export(r.Context(), callerID, h.kind, sc.Scope)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "url": url})
}

// Events streams status changes for one run as SSE signal patches. The
// current state is sent immediately; the stream ends when the run can
// no longer change or the client disconnects.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCaller(r.Context())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	id := chi.URLParam(r, "id")

	if _, err := h.service.Status(r.Context(), callerID, id); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	if done := h.sendRun(ctx, sse, callerID, id); done {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case changed := <-updates:
			if changed != id {
				continue
			}
			if done := h.sendRun(ctx, sse, callerID, id); done {
				return
			}
		}
	}
}

// sendRun pushes the run's current state and reports whether the stream
// should end. Failed and published runs never change again.
func (h *Handlers) sendRun(ctx context.Context, sse *datastar.ServerSentEventGenerator, callerID, id string) bool {
	run, err := h.service.Status(ctx, callerID, id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return true
	}

	payload, err := json.Marshal(map[string]runView{"run": viewOf(run)})
	if err != nil {
		_ = sse.ConsoleError(err)
		return true
	}
	if err := sse.PatchSignals(payload); err != nil {
		return true
	}

	return run.Status == core.RunStatusFailed || run.Status == core.RunStatusPublished
}
