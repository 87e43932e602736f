package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DueProcessor advances due occurrences and emits due notifications.
type DueProcessor interface {
	ProcessDueOccurrences(ctx context.Context, now time.Time, limit int) (int, error)
}

// RunLock guards against overlapping sweep runs.
type RunLock interface {
	TryLock(ctx context.Context, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context) error
}

// DueSweeper periodically scans for scheduled maintenances whose next date
// has passed. A single goroutine drives the ticker; the run-lock keeps
// replicas from sweeping at the same time.
type DueSweeper struct {
	processor DueProcessor
	lock      RunLock
	logger    *zap.Logger
	interval  time.Duration
	lockTTL   time.Duration
	batchSize int
}

// NewDueSweeper creates a sweeper.
func NewDueSweeper(processor DueProcessor, lock RunLock, logger *zap.Logger, interval, lockTTL time.Duration, batchSize int) *DueSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &DueSweeper{
		processor: processor,
		lock:      lock,
		logger:    logger,
		interval:  interval,
		lockTTL:   lockTTL,
		batchSize: batchSize,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (w *DueSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("due sweeper started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("due sweeper stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass when the lock is free.
func (w *DueSweeper) Sweep(ctx context.Context) {
	if w.lock != nil {
		acquired, err := w.lock.TryLock(ctx, w.lockTTL)
		if err != nil {
			w.logger.Warn("sweep lock unavailable", zap.Error(err))
			return
		}
		if !acquired {
			w.logger.Debug("sweep already running elsewhere, skipping")
			return
		}
		defer func() {
			if err := w.lock.Unlock(ctx); err != nil {
				w.logger.Warn("sweep lock release failed", zap.Error(err))
			}
		}()
	}

	processed, err := w.processor.ProcessDueOccurrences(ctx, time.Now(), w.batchSize)
	if err != nil {
		w.logger.Error("due sweep failed", zap.Error(err))
		return
	}
	if processed > 0 {
		w.logger.Info("due sweep completed", zap.Int("processed", processed))
	}
}
