package common

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrReadTimeout is returned by ReadAll when the input stops producing data
// for longer than the idle timeout.
var ErrReadTimeout = errors.New("input read timed out")

// kickReader reports every successful read to a watchdog.
type kickReader struct {
	r  io.Reader
	wd *Watchdog
}

func (k kickReader) Read(p []byte) (int, error) {
	n, err := k.r.Read(p)
	if n > 0 {
		k.wd.Kick()
	}
	return n, err
}

// ReadAll reads r to EOF. It fails with ErrReadTimeout when idle > 0 and no
// bytes arrive for that long, and with ctx.Err() when ctx is cancelled.
// On timeout or cancellation the blocked read is abandoned, not interrupted.
func ReadAll(ctx context.Context, r io.Reader, idle time.Duration) ([]byte, error) {
	if idle <= 0 && ctx.Done() == nil {
		return io.ReadAll(r)
	}

	wd := NewWatchdog(ctx, idle)
	defer wd.Stop()

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(kickReader{r: r, wd: wd})
		ch <- result{data: data, err: err}
	}()

	select {
	case res := <-ch:
		return res.data, res.err
	case <-wd.Context().Done():
		return nil, wd.Err()
	}
}
