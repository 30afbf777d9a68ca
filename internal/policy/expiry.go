package policy

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultExpiryInterval = time.Hour

type Expirer interface {
	ExpireLapsed(ctx context.Context) (int64, error)
}

// ExpiryWorker runs the lapse sweep on a fixed interval, starting with an
// immediate pass. A failed pass is logged and retried on the next tick.
type ExpiryWorker struct {
	expirer  Expirer
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewExpiryWorker(expirer Expirer, interval time.Duration, logger *slog.Logger) *ExpiryWorker {
	if interval <= 0 {
		interval = DefaultExpiryInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpiryWorker{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
	}
}

func (w *ExpiryWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		ctx, w.cancel = context.WithCancel(ctx)

		w.wg.Add(1)
		go w.loop(ctx)

		w.logger.Info("expiry worker started", "interval", w.interval.String())
	})
}

func (w *ExpiryWorker) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	_, _ = w.RunOnce(ctx)
	for {
		select {
		case <-ticker.C:
			_, _ = w.RunOnce(ctx)
		case <-ctx.Done():
			w.logger.Info("expiry worker shutting down")
			return
		}
	}
}

// RunOnce performs a single sweep and returns how many policies lapsed.
func (w *ExpiryWorker) RunOnce(ctx context.Context) (int64, error) {
	n, err := w.expirer.ExpireLapsed(ctx)
	if err != nil {
		w.logger.Error("RunOnce: expiry sweep failed", "error", err)
		return 0, err
	}
	w.logger.Info("RunOnce: expiry sweep finished", "expired", n)
	return n, nil
}

// Shutdown stops the loop and waits for an in-flight sweep to return.
func (w *ExpiryWorker) Shutdown() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
