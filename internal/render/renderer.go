package render

import (
	"time"

	"go.uber.org/zap"

	"github.com/decision-labs/contour/internal/contour"
	"github.com/decision-labs/contour/internal/logger"
	"github.com/decision-labs/contour/internal/noise"
)

const (
	DefaultTargetFPS = 30
	DefaultCellSize  = 2.5
	DefaultLevels    = 8
	DefaultScale     = 0.002
	DefaultOctaves   = 6
	DefaultTimeStep  = 0.008
	DefaultTimeScale = 0.08
)

// Options are the renderer's internal constants. The zero value is valid:
// every unset field takes its default.
type Options struct {
	Seed      int64
	Field     noise.Field
	TargetFPS int
	CellSize  float64
	Levels    int
	Scale     float64
	Octaves   int
	TimeStep  float64
	TimeScale float64
	// Linear uses exact linear edge crossings instead of the smoothstep-eased default.
	Linear bool
}

// DefaultOptions returns the zero-configuration constants.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.TargetFPS <= 0 {
		o.TargetFPS = DefaultTargetFPS
	}
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Levels < 1 {
		o.Levels = DefaultLevels
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Octaves < 1 {
		o.Octaves = DefaultOctaves
	}
	if o.TimeStep <= 0 {
		o.TimeStep = DefaultTimeStep
	}
	if o.TimeScale <= 0 {
		o.TimeScale = DefaultTimeScale
	}
	if o.Field == nil {
		o.Field = noise.NewPerlin(o.Seed)
	}
	return o
}

// FrameInterval is the minimum spacing between accepted frames.
func (o Options) FrameInterval() time.Duration {
	fps := o.TargetFPS
	if fps <= 0 {
		fps = DefaultTargetFPS
	}
	return time.Second / time.Duration(fps)
}

// State is the renderer lifecycle.
type State int

const (
	Idle State = iota
	Running
	// Disabled means Mount found no surface; nothing is scheduled.
	Disabled
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Disabled:
		return "disabled"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Stats is a snapshot of renderer counters.
type Stats struct {
	State      State
	Drawn      uint64
	Skipped    uint64
	Time       float64
	Rows, Cols int
	Segments   int
	LastFrame  time.Duration
}

// Renderer owns the animation loop: each accepted frame samples the field over
// the viewport grid, extracts every level with marching squares and strokes it.
//
// A Renderer is not safe for concurrent use. All methods and frame callbacks must
// run on the host's single frame-loop goroutine.
type Renderer struct {
	opts     Options
	host     Host
	interval time.Duration
	levels   []float64
	interp   contour.Interpolator
	log      *zap.Logger

	state    State
	pending  FrameID
	queued   bool
	listener ListenerID
	width    int
	height   int

	lastFrame time.Duration
	hasLast   bool
	clock     float64

	buf   []contour.Segment
	stats Stats
}

// New builds an idle renderer. Nothing is scheduled until Mount.
func New(host Host, opts Options) *Renderer {
	opts = opts.withDefaults()
	interp := contour.EdgeParam
	if opts.Linear {
		interp = contour.LinearEdgeParam
	}
	return &Renderer{
		opts:     opts,
		host:     host,
		interval: opts.FrameInterval(),
		levels:   contour.Levels(opts.Levels),
		interp:   interp,
		log:      logger.Named("render"),
	}
}

// Options returns the effective constants.
func (r *Renderer) Options() Options { return r.opts }

// State reports the lifecycle state.
func (r *Renderer) State() State { return r.state }

// Time is the animation clock. It only moves forward, once per drawn frame.
func (r *Renderer) Time() float64 { return r.clock }

// Stats returns a snapshot of the counters.
func (r *Renderer) Stats() Stats {
	s := r.stats
	s.State = r.state
	s.Time = r.clock
	return s
}

// Mount starts the loop. Without a surface the renderer disables itself and
// returns nil: the background is decorative and must never break its host.
func (r *Renderer) Mount() error {
	switch r.state {
	case Running:
		return ErrAlreadyMounted
	case Stopped:
		return ErrStopped
	case Disabled:
		return nil
	}

	if r.host.Surface == nil || r.host.Scheduler == nil {
		r.state = Disabled
		r.log.Debug("no drawing surface, background disabled")
		return nil
	}

	r.readViewport()
	if r.host.Events != nil {
		r.listener = r.host.Events.AddResizeListener(r.readViewport)
	}
	r.state = Running
	r.request()
	r.log.Debug("mounted",
		zap.Int("width", r.width),
		zap.Int("height", r.height),
		zap.Int("target_fps", r.opts.TargetFPS),
	)
	return nil
}

// Unmount cancels the pending frame and removes the resize listener. After it
// returns no callback will draw again. Unmount is idempotent.
func (r *Renderer) Unmount() {
	if r.state == Stopped {
		return
	}
	if r.queued {
		r.host.Scheduler.CancelFrame(r.pending)
		r.queued = false
	}
	if r.state == Running && r.host.Events != nil {
		r.host.Events.RemoveResizeListener(r.listener)
	}
	r.state = Stopped
	r.log.Debug("unmounted", zap.Uint64("drawn", r.stats.Drawn), zap.Uint64("skipped", r.stats.Skipped))
}

func (r *Renderer) readViewport() {
	if r.host.Viewport == nil {
		return
	}
	r.width, r.height = r.host.Viewport.Size()
}

func (r *Renderer) request() {
	r.pending = r.host.Scheduler.RequestFrame(r.frame)
	r.queued = true
}

func (r *Renderer) frame(now time.Duration) {
	if r.state != Running {
		return
	}
	r.queued = false

	if r.hasLast && now-r.lastFrame < r.interval {
		r.stats.Skipped++
		r.request()
		return
	}
	r.lastFrame, r.hasLast = now, true
	r.stats.LastFrame = now

	r.draw()
	// The surface or a listener may have unmounted us mid-frame.
	if r.state != Running {
		return
	}
	r.clock += r.opts.TimeStep
	r.stats.Drawn++
	r.request()
}

func (r *Renderer) draw() {
	o := r.opts
	rows, cols := contour.GridSize(r.width, r.height, o.CellSize)
	r.host.Surface.Clear(FrameInfo{Width: r.width, Height: r.height, Rows: rows, Cols: cols, Time: r.clock})

	hm := contour.BuildHeightMap(o.Field, rows, cols, o.CellSize, o.Scale, r.clock*o.TimeScale, o.Octaves)

	total := 0
	for i, th := range r.levels {
		r.buf = contour.AppendExtract(r.buf[:0], hm, th, o.CellSize, r.interp)
		total += len(r.buf)
		r.host.Surface.Stroke(contour.Layer{
			Level:     i,
			Threshold: th,
			Style:     contour.StyleFor(i),
			Segments:  r.buf,
		})
		if r.state != Running {
			break
		}
	}

	r.stats.Rows, r.stats.Cols, r.stats.Segments = rows, cols, total
}
