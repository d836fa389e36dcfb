package common

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Watchdog derives a context that is cancelled with ErrReadTimeout once
// Kick has not been called for the idle duration. With idle <= 0 only the
// parent context can end it.
type Watchdog struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	idle   time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatchdog starts a watchdog under parent. Call Stop to release it.
func NewWatchdog(parent context.Context, idle time.Duration) *Watchdog {
	ctx, cancel := context.WithCancelCause(parent)
	w := &Watchdog{ctx: ctx, cancel: cancel, idle: idle}
	if idle > 0 {
		w.timer = time.AfterFunc(idle, w.expire)
	}
	return w
}

func (w *Watchdog) expire() {
	slog.Debug("input idle, giving up", "idle", w.idle)
	w.cancel(fmt.Errorf("%w after %v without data", ErrReadTimeout, w.idle))
}

// Context is done on idle timeout, on parent cancellation or after Stop.
func (w *Watchdog) Context() context.Context {
	return w.ctx
}

// Kick records input activity and restarts the idle period. It does nothing
// once the context is done.
func (w *Watchdog) Kick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil && w.ctx.Err() == nil {
		w.timer.Reset(w.idle)
	}
}

// Err reports why the context ended: an error wrapping ErrReadTimeout after
// an idle timeout, otherwise the parent's error. Nil while still running.
func (w *Watchdog) Err() error {
	if w.ctx.Err() == nil {
		return nil
	}
	return context.Cause(w.ctx)
}

// Stop disarms the timer and cancels the context.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.cancel(context.Canceled)
}
