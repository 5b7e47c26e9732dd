package render

import (
	"sort"
	"time"
)

// ManualScheduler is a deterministic Scheduler driven by an explicit clock.
// Each Advance is one compositor frame: callbacks requested before it run once,
// callbacks requested while it runs wait for the next Advance.
type ManualScheduler struct {
	now     time.Duration
	next    FrameID
	pending map[FrameID]FrameFunc
	batch   map[FrameID]FrameFunc
}

// NewManualScheduler starts the clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameID]FrameFunc)}
}

func (s *ManualScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *ManualScheduler) CancelFrame(id FrameID) {
	delete(s.pending, id)
	if s.batch != nil {
		delete(s.batch, id)
	}
}

// Now is the current simulated time.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending counts callbacks waiting for the next frame.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

// Advance moves the clock by d and runs the due callbacks in request order.
// It returns how many ran.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.now += d
	if len(s.pending) == 0 {
		return 0
	}

	s.batch, s.pending = s.pending, make(map[FrameID]FrameFunc)
	ids := make([]FrameID, 0, len(s.batch))
	for id := range s.batch {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		fn, ok := s.batch[id]
		if !ok {
			continue
		}
		delete(s.batch, id)
		fn(s.now)
		ran++
	}
	s.batch = nil
	return ran
}

// Run calls Advance(step) n times.
func (s *ManualScheduler) Run(step time.Duration, n int) {
	for i := 0; i < n; i++ {
		s.Advance(step)
	}
}
