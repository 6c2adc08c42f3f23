package inject

import (
	"context"
	"time"
)

// DefaultSettleDelay gives the window manager time to return focus to the
// previous window after the picker closes.
const DefaultSettleDelay = 100 * time.Millisecond

// Settle waits a fixed delay before handing text to the wrapped injector.
// It makes a single attempt; a retry could land in a different window.
type Settle struct {
	Injector Injector
	Delay    time.Duration
	// Sleep defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Settled wraps inj with a settle delay.
func Settled(inj Injector, delay time.Duration) *Settle {
	return &Settle{Injector: inj, Delay: delay}
}

// Name implements Injector.
func (s *Settle) Name() string {
	return s.Injector.Name()
}

// Inject implements Injector. Empty text is ignored.
func (s *Settle) Inject(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	if err := sleep(ctx, s.Delay); err != nil {
		return err
	}
	return s.Injector.Inject(ctx, text)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
