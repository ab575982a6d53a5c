// Package scheduler runs the recurring transaction catch-up loop.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/recurrence"
)

// Worker periodically materializes due recurring transactions.
type Worker struct {
	catchUp      *recurrence.CatchUpUseCase
	lock         adapter.SchedulerLock
	pollInterval time.Duration
	lockTTL      time.Duration
}

// WorkerConfig holds configuration for the scheduler worker.
type WorkerConfig struct {
	PollInterval time.Duration
	LockTTL      time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 1 * time.Hour,
		LockTTL:      10 * time.Minute,
	}
}

// NewWorker creates a new scheduler worker.
func NewWorker(catchUp *recurrence.CatchUpUseCase, lock adapter.SchedulerLock, config WorkerConfig) *Worker {
	return &Worker{
		catchUp:      catchUp,
		lock:         lock,
		pollInterval: config.PollInterval,
		lockTTL:      config.LockTTL,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Recurring transaction worker started",
		"poll_interval", w.pollInterval,
		"lock_ttl", w.lockTTL,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurring transaction worker shutting down")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

// run executes a single catch-up pass under the distributed lock. Only one
// instance holds the lock at a time; the others skip the pass.
func (w *Worker) run(ctx context.Context) {
	acquired, err := w.lock.Acquire(ctx, w.lockTTL)
	if err != nil {
		slog.Error("Failed to acquire scheduler lock", "error", err)
		return
	}
	if !acquired {
		slog.Debug("Scheduler lock held elsewhere, skipping pass")
		return
	}
	defer func() {
		if releaseErr := w.lock.Release(ctx); releaseErr != nil {
			slog.Error("Failed to release scheduler lock", "error", releaseErr)
		}
	}()

	output, err := w.catchUp.Execute(ctx, recurrence.CatchUpInput{})
	if err != nil {
		slog.Error("Recurring transaction catch-up pass failed", "error", err)
		return
	}

	if output.Materialized > 0 || output.Failed > 0 {
		slog.Info("Recurring transaction catch-up pass completed",
			"materialized", output.Materialized,
			"failed", output.Failed,
		)
	}
}

// RunNow executes a single catch-up pass immediately (useful for testing).
func (w *Worker) RunNow(ctx context.Context) {
	w.run(ctx)
}
