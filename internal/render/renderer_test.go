package render

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/decision-labs/contour/internal/contour"
)

type recordingSurface struct {
	clears int
	infos  []FrameInfo
	layers [][]contour.Layer
}

func (s *recordingSurface) Clear(info FrameInfo) {
	s.clears++
	s.infos = append(s.infos, info)
	s.layers = append(s.layers, nil)
}

func (s *recordingSurface) Stroke(layer contour.Layer) {
	layer.Segments = append([]contour.Segment(nil), layer.Segments...)
	last := len(s.layers) - 1
	s.layers[last] = append(s.layers[last], layer)
}

// leakyScheduler ignores cancellation so stale callbacks can be replayed.
type leakyScheduler struct {
	fns []FrameFunc
}

func (s *leakyScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.fns = append(s.fns, fn)
	return FrameID(len(s.fns))
}

func (s *leakyScheduler) CancelFrame(FrameID) {}

// unmountingSurface tears the renderer down from inside a stroke.
type unmountingSurface struct {
	recordingSurface
	r       *Renderer
	strokes int
}

func (s *unmountingSurface) Stroke(layer contour.Layer) {
	s.strokes++
	s.recordingSurface.Stroke(layer)
	s.r.Unmount()
}

const step = 5 * time.Millisecond

var _ = Describe("Renderer", func() {
	var (
		surface *recordingSurface
		sched   *ManualScheduler
		win     *Window
		r       *Renderer
	)

	BeforeEach(func() {
		surface = &recordingSurface{}
		sched = NewManualScheduler()
		win = NewWindow(80, 40)
		r = New(Host{Surface: surface, Scheduler: sched, Viewport: win, Events: win}, Options{})
	})

	Describe("lifecycle", func() {
		It("starts idle with nothing scheduled", func() {
			Expect(r.State()).To(Equal(Idle))
			Expect(sched.Pending()).To(BeZero())
			Expect(win.ListenerCount()).To(BeZero())
		})

		It("schedules one frame and one resize listener on mount", func() {
			Expect(r.Mount()).To(Succeed())
			Expect(r.State()).To(Equal(Running))
			Expect(sched.Pending()).To(Equal(1))
			Expect(win.ListenerCount()).To(Equal(1))
		})

		It("rejects a second mount", func() {
			Expect(r.Mount()).To(Succeed())
			Expect(r.Mount()).To(MatchError(ErrAlreadyMounted))
		})

		It("never restarts once stopped", func() {
			Expect(r.Mount()).To(Succeed())
			r.Unmount()
			Expect(r.State()).To(Equal(Stopped))
			Expect(r.Mount()).To(MatchError(ErrStopped))
			Expect(sched.Pending()).To(BeZero())
		})

		It("allows unmount without mount and repeated unmounts", func() {
			r.Unmount()
			r.Unmount()
			Expect(r.State()).To(Equal(Stopped))
		})
	})

	Describe("missing surface", func() {
		It("disables itself without error", func() {
			r = New(Host{Scheduler: sched, Viewport: win, Events: win}, Options{})
			Expect(r.Mount()).To(Succeed())
			Expect(r.State()).To(Equal(Disabled))
			Expect(sched.Pending()).To(BeZero())
			Expect(win.ListenerCount()).To(BeZero())

			sched.Run(step, 20)
			Expect(r.Stats().Drawn).To(BeZero())

			r.Unmount()
			Expect(r.State()).To(Equal(Stopped))
		})
	})

	Describe("frame throttling", func() {
		It("draws at most once per frame interval and advances the clock only on draws", func() {
			Expect(r.Mount()).To(Succeed())
			interval := r.Options().FrameInterval()

			prevClock := r.Time()
			prevDrawn := uint64(0)
			for i := 0; i < 200; i++ {
				sched.Advance(step)
				st := r.Stats()
				Expect(st.Time).To(BeNumerically(">=", prevClock))
				if st.Drawn == prevDrawn {
					Expect(st.Time).To(Equal(prevClock))
				} else {
					Expect(st.Drawn).To(Equal(prevDrawn + 1))
					Expect(st.Time).To(BeNumerically(">", prevClock))
				}
				prevClock, prevDrawn = st.Time, st.Drawn
			}

			elapsed := sched.Now()
			st := r.Stats()
			maxFrames := uint64(elapsed/interval) + 1
			minFrames := uint64(elapsed/(interval+step)) - 1
			Expect(st.Drawn).To(BeNumerically("<=", maxFrames))
			Expect(st.Drawn).To(BeNumerically(">=", minFrames))
			Expect(st.Drawn + st.Skipped).To(Equal(uint64(200)))
			Expect(st.Time).To(BeNumerically("~", float64(st.Drawn)*DefaultTimeStep, 1e-9))
			Expect(surface.clears).To(Equal(int(st.Drawn)))
		})

		It("draws the first frame immediately", func() {
			Expect(r.Mount()).To(Succeed())
			sched.Advance(step)
			Expect(r.Stats().Drawn).To(Equal(uint64(1)))
			sched.Advance(step)
			Expect(r.Stats().Drawn).To(Equal(uint64(1)))
			Expect(r.Stats().Skipped).To(Equal(uint64(1)))
		})
	})

	Describe("drawing", func() {
		It("strokes every level in ascending order with its style", func() {
			Expect(r.Mount()).To(Succeed())
			sched.Advance(step)

			Expect(surface.layers).To(HaveLen(1))
			layers := surface.layers[0]
			Expect(layers).To(HaveLen(DefaultLevels))
			for i, l := range layers {
				Expect(l.Level).To(Equal(i))
				Expect(l.Threshold).To(Equal(float64(i) / DefaultLevels))
				Expect(l.Style).To(Equal(contour.StyleFor(i)))
			}
		})

		It("derives the grid from the viewport", func() {
			Expect(r.Mount()).To(Succeed())
			sched.Advance(step)
			rows, cols := contour.GridSize(80, 40, DefaultCellSize)
			Expect(surface.infos[0].Rows).To(Equal(rows))
			Expect(surface.infos[0].Cols).To(Equal(cols))
			Expect(r.Stats().Rows).To(Equal(rows))
		})

		It("keeps every endpoint finite", func() {
			Expect(r.Mount()).To(Succeed())
			sched.Run(40*time.Millisecond, 5)
			for _, frame := range surface.layers {
				for _, l := range frame {
					for _, sg := range l.Segments {
						for _, v := range []float64{sg.X1, sg.Y1, sg.X2, sg.Y2} {
							Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
						}
					}
				}
			}
		})

		It("produces identical frames for identical seeds", func() {
			other := &recordingSurface{}
			sched2 := NewManualScheduler()
			win2 := NewWindow(80, 40)
			r2 := New(Host{Surface: other, Scheduler: sched2, Viewport: win2, Events: win2}, Options{})

			Expect(r.Mount()).To(Succeed())
			Expect(r2.Mount()).To(Succeed())
			sched.Run(40*time.Millisecond, 3)
			sched2.Run(40*time.Millisecond, 3)

			Expect(other.layers).To(Equal(surface.layers))
		})

		It("uses the exact interpolator when asked", func() {
			lin := &recordingSurface{}
			s2 := NewManualScheduler()
			r2 := New(Host{Surface: lin, Scheduler: s2, Viewport: win}, Options{Linear: true})
			Expect(r2.Mount()).To(Succeed())
			Expect(r.Mount()).To(Succeed())
			s2.Advance(step)
			sched.Advance(step)

			Expect(lin.layers[0]).To(HaveLen(len(surface.layers[0])))
			Expect(lin.layers[0]).NotTo(Equal(surface.layers[0]))
		})
	})

	Describe("resize", func() {
		It("uses the new size on the next accepted frame", func() {
			Expect(r.Mount()).To(Succeed())
			sched.Advance(step)

			win.Resize(20, 10)
			sched.Advance(40 * time.Millisecond)

			Expect(surface.infos).To(HaveLen(2))
			Expect(surface.infos[1].Width).To(Equal(20))
			Expect(surface.infos[1].Height).To(Equal(10))
		})

		It("floors a zero-area viewport at a 1x1 grid", func() {
			Expect(r.Mount()).To(Succeed())
			win.Resize(0, 0)
			sched.Advance(step)

			Expect(surface.infos[0].Rows).To(Equal(1))
			Expect(surface.infos[0].Cols).To(Equal(1))
			Expect(r.Stats().Segments).To(BeZero())
		})
	})

	Describe("teardown", func() {
		It("stops drawing and removes the listener", func() {
			Expect(r.Mount()).To(Succeed())
			sched.Run(40*time.Millisecond, 3)
			drawn := surface.clears

			r.Unmount()
			Expect(win.ListenerCount()).To(BeZero())
			Expect(sched.Pending()).To(BeZero())

			sched.Run(40*time.Millisecond, 50)
			win.Resize(10, 10)
			Expect(surface.clears).To(Equal(drawn))
		})

		It("ignores callbacks a scheduler delivers after unmount", func() {
			leaky := &leakyScheduler{}
			r = New(Host{Surface: surface, Scheduler: leaky, Viewport: win, Events: win}, Options{})
			Expect(r.Mount()).To(Succeed())
			r.Unmount()

			for i, fn := range leaky.fns {
				fn(time.Duration(i+1) * time.Second)
			}
			Expect(surface.clears).To(BeZero())
			Expect(r.Time()).To(BeZero())
		})

		It("leaves nothing pending when unmounted during a frame", func() {
			s := &unmountingSurface{}
			r = New(Host{Surface: s, Scheduler: sched, Viewport: win, Events: win}, Options{})
			s.r = r
			Expect(r.Mount()).To(Succeed())

			sched.Advance(5 * time.Millisecond)

			Expect(r.State()).To(Equal(Stopped))
			Expect(sched.Pending()).To(BeZero())
			Expect(win.ListenerCount()).To(BeZero())
			Expect(r.Time()).To(BeZero())
			Expect(s.strokes).To(Equal(1))
		})

		It("lets the ticker scheduler return once unmounted mid-frame", func() {
			ticker := NewTickerScheduler(time.Millisecond)
			s := &unmountingSurface{}
			r = New(Host{Surface: s, Scheduler: ticker, Viewport: win, Events: win}, Options{})
			s.r = r
			Expect(r.Mount()).To(Succeed())

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			Expect(ticker.Run(ctx)).To(Succeed())
			Expect(ticker.Pending()).To(BeZero())
		})
	})
})
