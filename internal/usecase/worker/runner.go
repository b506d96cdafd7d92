package worker

import (
	"context"
	"sync"
	"time"
)

// loopRunner drives a function on a ticker in one background goroutine.
type loopRunner struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (l *loopRunner) start(interval time.Duration, tick func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick(ctx)
			}
		}
	}()
}

// stop waits for the in-flight tick, or gives up when ctx expires.
func (l *loopRunner) stop(ctx context.Context) error {
	if l.cancel == nil {
		return nil
	}
	l.cancel()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
