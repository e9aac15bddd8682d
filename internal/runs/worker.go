package runs

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/exceptions"
	"github.com/slahq/sla/internal/ui/notifier"
)

// Worker advances queued runs through the lifecycle. It polls the
// store for work with fibonacci backoff capped at maxBackoff, resets
// the backoff whenever it finds a run, and broadcasts every
// transition.
type Worker struct {
	store        core.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
	pollInterval time.Duration
	maxBackoff   time.Duration
}

// NewWorker creates a run worker.
func NewWorker(store core.Store, notify *notifier.Notifier, logger *slog.Logger, pollInterval, maxBackoff time.Duration) *Worker {
	return &Worker{
		store:        store,
		notifier:     notify,
		logger:       logger.With("component", "worker"),
		pollInterval: pollInterval,
		maxBackoff:   maxBackoff,
	}
}

// Run blocks until the context is cancelled, claiming and processing
// queued runs.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("worker started",
		slog.Duration("poll_interval", w.pollInterval),
		slog.Duration("max_backoff", w.maxBackoff))

	backoff := w.newBackoff()

	for {
		if ctx.Err() != nil {
			return nil
		}

		run, err := w.store.ClaimQueuedRun(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Error("claim failed", "error", err)
			if !w.sleep(ctx, backoff) {
				return nil
			}
			continue
		}

		if run == nil {
			if !w.sleep(ctx, backoff) {
				return nil
			}
			continue
		}

		backoff = w.newBackoff()
		w.process(ctx, run)
	}
}

// ProcessOne claims and processes at most one queued run. It reports
// whether a run was processed. Used by tests and by the CLI drain
// path.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	run, err := w.store.ClaimQueuedRun(ctx)
	if err != nil {
		return false, err
	}
	if run == nil {
		return false, nil
	}
	w.process(ctx, run)
	return true, nil
}

func (w *Worker) newBackoff() retry.Backoff {
	return retry.WithCappedDuration(w.maxBackoff, retry.NewFibonacci(w.pollInterval))
}

// sleep waits for the backoff's next interval. Returns false when the
// context was cancelled while waiting.
func (w *Worker) sleep(ctx context.Context, backoff retry.Backoff) bool {
	d, stopped := backoff.Next()
	if stopped {
		d = w.maxBackoff
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// process computes a claimed run to completion and records the
// terminal status. Compute failures fail the run; store failures are
// logged and left for the operator (the run stays running).
func (w *Worker) process(ctx context.Context, run *core.Run) {
	w.logger.Info("processing run",
		slog.String("id", run.ID),
		slog.String("kind", string(run.Kind)))
	w.notifier.Broadcast(run.ID)

	rows, metrics, err := Compute(run.Kind, run.Scope)
	if err != nil {
		w.finish(ctx, run.ID, core.RunStatusFailed, nil, err.Error())
		return
	}

	if err := w.store.SaveProjectionRows(ctx, run.ID, rows); err != nil {
		w.finish(ctx, run.ID, core.RunStatusFailed, nil, err.Error())
		return
	}

	w.finish(ctx, run.ID, core.RunStatusSucceeded, metrics, "")

	// The detection sweep runs after success so exceptions always
	// describe the results the user will see.
	run.Status = core.RunStatusSucceeded
	for _, ex := range exceptions.Detect(run, rows) {
		if err := w.store.CreateException(ctx, ex); err != nil {
			w.logger.Error("failed to record exception", "error", err,
				slog.String("run", run.ID), slog.String("type", string(ex.Type)))
		}
	}
}

func (w *Worker) finish(ctx context.Context, id string, status core.RunStatus, metrics map[string]string, errMsg string) {
	if err := w.store.FinishRun(ctx, id, status, metrics, errMsg); err != nil {
		w.logger.Error("failed to finish run", "error", err, slog.String("id", id))
		return
	}

	w.logger.Info("run finished", slog.String("id", id), slog.String("status", string(status)))
	w.notifier.Broadcast(id)
}
