// Package worker discovers books eligible for a workflow run and drives
// them through the engine, either once or on a polling loop.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackzampolin/inkwell/internal/store"
	"github.com/jackzampolin/inkwell/internal/workflow"
)

// Worker runs discovered books sequentially. Each book gets its own error
// boundary: a failed run marks the book errored and the worker moves on.
type Worker struct {
	store    *store.Store
	engine   *workflow.Engine
	limit    atomic.Int32
	interval time.Duration
	delay    time.Duration
	logger   *slog.Logger
}

// Config configures a Worker.
type Config struct {
	Store  *store.Store
	Engine *workflow.Engine

	// Limit caps how many books one discovery pass returns per filter.
	// Defaults to 5.
	Limit int
	// Interval is the poll period of the loop. Defaults to 60s.
	Interval time.Duration
	// Delay is the pause between consecutive books. Defaults to 2s.
	Delay  time.Duration
	Logger *slog.Logger
}

// New creates a Worker.
func New(cfg Config) (*Worker, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("worker: store is required")
	}
	if cfg.Engine == nil {
		return nil, fmt.Errorf("worker: engine is required")
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Worker{
		store:    cfg.Store,
		engine:   cfg.Engine,
		interval: cfg.Interval,
		delay:    cfg.Delay,
		logger:   logger,
	}
	w.limit.Store(int32(cfg.Limit))
	return w, nil
}

// SetLimit changes the per-filter discovery cap. Safe to call while the
// loop is running; the next discovery pass picks it up. Used by config
// hot-reload.
func (w *Worker) SetLimit(limit int) {
	if limit <= 0 {
		return
	}
	w.limit.Store(int32(limit))
}

// Discover unions the three eligibility filters, preserving first-seen
// order and dropping duplicates. Books already marked errored match no
// filter and are left for manual intervention.
func (w *Worker) Discover(ctx context.Context) ([]string, error) {
	limit := int(w.limit.Load())

	pending, err := w.store.PendingOutline(ctx, limit)
	if err != nil {
		return nil, err
	}
	notStarted, err := w.store.ApprovedNotStarted(ctx, limit)
	if err != nil {
		return nil, err
	}
	inProgress, err := w.store.ApprovedInProgress(ctx, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, batch := range [][]string{pending, notStarted, inProgress} {
		for _, id := range batch {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ProcessBook runs one book through the workflow. Run errors are absorbed
// here: the book is marked errored and the error returned for logging, so
// one bad book cannot stall the batch.
func (w *Worker) ProcessBook(ctx context.Context, bookID string) error {
	event, err := w.engine.Run(ctx, bookID)
	if err != nil {
		w.logger.Error("workflow run failed", "book", bookID, "error", err)
		if markErr := w.store.SetOutputStatus(ctx, bookID, store.OutputStatusError); markErr != nil {
			w.logger.Error("failed to mark book errored", "book", bookID, "error", markErr)
		}
		return err
	}
	w.logger.Info("book processed", "book", bookID, "event", event)
	return nil
}

// RunOnce performs one discovery pass and processes everything it finds.
// It returns how many books were attempted.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	ids, err := w.Discover(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		w.logger.Info("no eligible books found")
		return 0, nil
	}

	w.logger.Info("processing books", "count", len(ids))
	w.runBatch(ctx, ids)
	return len(ids), nil
}

// RunBooks processes an explicit list of book ids, skipping discovery.
func (w *Worker) RunBooks(ctx context.Context, ids []string) {
	w.runBatch(ctx, ids)
}

func (w *Worker) runBatch(ctx context.Context, ids []string) {
	for i, id := range ids {
		if ctx.Err() != nil {
			return
		}
		// Per-book boundary: the error is already logged and recorded.
		_ = w.ProcessBook(ctx, id)

		if i < len(ids)-1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.delay):
			}
		}
	}
}

// RunLoop polls for eligible books until the context is cancelled.
func (w *Worker) RunLoop(ctx context.Context) error {
	w.logger.Info("worker loop started", "interval", w.interval, "limit", w.limit.Load())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil {
			w.logger.Error("discovery pass failed", "error", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("worker loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
