package export

import (
	"slices"

	"github.com/decision-labs/contour/internal/contour"
	"github.com/decision-labs/contour/internal/render"
)

// Recorder is a render.Surface that keeps every frame it is given. Segments are
// copied because the renderer reuses its buffer between strokes.
type Recorder struct {
	// Limit caps how many frames are kept; older frames are dropped. Zero keeps all.
	Limit  int
	frames []contour.Frame
	open   bool
}

var _ render.Surface = (*Recorder)(nil)

func NewRecorder(limit int) *Recorder {
	return &Recorder{Limit: limit}
}

// Clear implements render.Surface and starts a new frame.
func (r *Recorder) Clear(info render.FrameInfo) {
	if r.Limit > 0 && len(r.frames) >= r.Limit {
		r.frames = append(r.frames[:0], r.frames[1:]...)
	}
	r.frames = append(r.frames, contour.Frame{Width: info.Width, Height: info.Height, Time: info.Time})
	r.open = true
}

// Stroke implements render.Surface.
func (r *Recorder) Stroke(layer contour.Layer) {
	if !r.open {
		return
	}
	layer.Segments = append([]contour.Segment(nil), layer.Segments...)
	f := &r.frames[len(r.frames)-1]
	f.Layers = append(f.Layers, layer)
}

// Frames returns a snapshot of the recorded frames, oldest first. Later
// recording does not change it.
func (r *Recorder) Frames() []contour.Frame { return slices.Clone(r.frames) }

// Last returns the newest frame.
func (r *Recorder) Last() (contour.Frame, bool) {
	if len(r.frames) == 0 {
		return contour.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

func (r *Recorder) Reset() {
	r.frames = r.frames[:0]
	r.open = false
}
