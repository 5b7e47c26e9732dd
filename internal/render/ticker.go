package render

import (
	"context"
	"time"
)

// DefaultTickRate mimics a 60 Hz compositor.
const DefaultTickRate = time.Second / 60

// TickerScheduler is a wall-clock Scheduler. Run delivers due callbacks on the
// calling goroutine, one tick at a time, so frames never overlap.
type TickerScheduler struct {
	rate    time.Duration
	start   time.Time
	manual  *ManualScheduler
	elapsed time.Duration
}

// NewTickerScheduler ticks at rate; a non-positive rate means DefaultTickRate.
func NewTickerScheduler(rate time.Duration) *TickerScheduler {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &TickerScheduler{rate: rate, manual: NewManualScheduler()}
}

func (s *TickerScheduler) RequestFrame(fn FrameFunc) FrameID { return s.manual.RequestFrame(fn) }

func (s *TickerScheduler) CancelFrame(id FrameID) { s.manual.CancelFrame(id) }

// Pending counts callbacks waiting for the next tick.
func (s *TickerScheduler) Pending() int { return s.manual.Pending() }

// Run blocks until ctx is done or no callback is pending.
func (s *TickerScheduler) Run(ctx context.Context) error {
	s.start, s.elapsed = time.Now(), 0
	t := time.NewTicker(s.rate)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if s.manual.Pending() == 0 {
				return nil
			}
			elapsed := now.Sub(s.start)
			s.manual.Advance(elapsed - s.elapsed)
			s.elapsed = elapsed
		}
	}
}
