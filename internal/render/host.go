package render

import (
	"time"

	"github.com/decision-labs/contour/internal/contour"
)

// FrameID identifies a pending frame callback.
type FrameID uint64

// FrameFunc is invoked by a Scheduler with the host's high-resolution time.
type FrameFunc func(now time.Duration)

// Scheduler delivers one callback per requested frame. A callback that wants
// another frame requests it again; nothing repeats on its own.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// ListenerID identifies a registered resize listener.
type ListenerID uint64

// Viewport reports the drawable size in device pixels.
type Viewport interface {
	Size() (width, height int)
}

// EventTarget delivers resize notifications.
type EventTarget interface {
	AddResizeListener(fn func()) ListenerID
	RemoveResizeListener(id ListenerID)
}

// FrameInfo describes the frame about to be stroked.
type FrameInfo struct {
	Width, Height int
	Rows, Cols    int
	Time          float64
}

// Surface receives draw commands. Layer segments are only valid for the
// duration of the Stroke call; implementations that keep them must copy.
type Surface interface {
	Clear(info FrameInfo)
	Stroke(layer contour.Layer)
}

// Host bundles what a renderer needs from its environment.
type Host struct {
	Surface   Surface
	Scheduler Scheduler
	Viewport  Viewport
	Events    EventTarget
}
