package render

import (
	"context"
	"testing"
	"time"
)

func TestManualSchedulerOrderAndDeferral(t *testing.T) {
	s := NewManualScheduler()
	var order []int

	s.RequestFrame(func(time.Duration) { order = append(order, 1) })
	s.RequestFrame(func(time.Duration) {
		order = append(order, 2)
		s.RequestFrame(func(time.Duration) { order = append(order, 3) })
	})

	if ran := s.Advance(time.Millisecond); ran != 2 {
		t.Fatalf("expected 2 callbacks, ran %d", ran)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
	if s.Pending() != 1 {
		t.Fatalf("callback requested during a frame should wait, pending=%d", s.Pending())
	}

	s.Advance(time.Millisecond)
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("unexpected order %v", order)
	}
	if s.Now() != 2*time.Millisecond {
		t.Errorf("clock = %v", s.Now())
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	called := false

	id := s.RequestFrame(func(time.Duration) { called = true })
	s.CancelFrame(id)
	s.Advance(time.Millisecond)
	if called {
		t.Error("cancelled callback ran")
	}

	// cancelling a later callback from inside an earlier one in the same frame
	var second FrameID
	s.RequestFrame(func(time.Duration) { s.CancelFrame(second) })
	second = s.RequestFrame(func(time.Duration) { called = true })
	s.Advance(time.Millisecond)
	if called {
		t.Error("callback cancelled mid-frame still ran")
	}
}

func TestManualSchedulerPassesNow(t *testing.T) {
	s := NewManualScheduler()
	var got time.Duration
	s.RequestFrame(func(now time.Duration) { got = now })
	s.Advance(7 * time.Millisecond)
	if got != 7*time.Millisecond {
		t.Errorf("callback saw %v", got)
	}
}

func TestWindowListeners(t *testing.T) {
	w := NewWindow(10, 20)
	calls := 0
	id := w.AddResizeListener(func() { calls++ })
	w.AddResizeListener(func() { calls++ })

	w.Resize(30, 40)
	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}
	if width, height := w.Size(); width != 30 || height != 40 {
		t.Errorf("size = %dx%d", width, height)
	}

	w.RemoveResizeListener(id)
	if w.ListenerCount() != 1 {
		t.Errorf("listener count = %d", w.ListenerCount())
	}
}

func TestTickerSchedulerStopsWhenIdle(t *testing.T) {
	s := NewTickerScheduler(time.Millisecond)
	win := NewWindow(40, 20)
	surface := &recordingSurface{}
	r := New(Host{Surface: surface, Scheduler: s, Viewport: win, Events: win}, Options{TargetFPS: 200})
	if err := r.Mount(); err != nil {
		t.Fatalf("mount: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("expected deadline, got %v", err)
	}
	if r.Stats().Drawn == 0 {
		t.Error("expected at least one frame in 50ms")
	}

	r.Unmount()
	if err := s.Run(context.Background()); err != nil {
		t.Errorf("run with nothing pending should return nil, got %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := DefaultOptions()
	if o.TargetFPS != 30 || o.CellSize != 2.5 || o.Levels != 8 || o.Octaves != 6 {
		t.Errorf("unexpected defaults %+v", o)
	}
	if o.Field == nil {
		t.Error("default field missing")
	}
	if got := o.FrameInterval(); got != time.Second/30 {
		t.Errorf("frame interval = %v", got)
	}
}
