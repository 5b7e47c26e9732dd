package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decision-labs/contour/internal/contour"
	"github.com/decision-labs/contour/internal/export"
	"github.com/decision-labs/contour/internal/logger"
	"github.com/decision-labs/contour/internal/render"
	"github.com/decision-labs/contour/internal/viz"
)

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := rendererOptions(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("frames")
	if n < 1 {
		return fmt.Errorf("frames must be positive, got %d", n)
	}
	braille := strings.EqualFold(format, "braille")
	f := export.FormatSVG
	if !braille {
		if f, err = export.FormatFor("frame." + format); err != nil {
			return err
		}
	}

	rec := export.NewRecorder(0)
	sched := render.NewManualScheduler()
	win := render.NewWindow(width, height)
	r := render.New(render.Host{Surface: rec, Scheduler: sched, Viewport: win, Events: win}, opts)
	if err := r.Mount(); err != nil {
		return err
	}
	sched.Run(r.Options().FrameInterval(), n)
	r.Unmount()

	recorded := rec.Frames()
	log := logger.Named("cli")

	if f == export.FormatGIF {
		path := outPath
		if !strings.EqualFold(filepath.Ext(path), ".gif") {
			path = filepath.Join(outPath, "contour.gif")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		d := delay
		if d <= 0 {
			d = max(1, 100/r.Options().TargetFPS)
		}
		if err := export.WriteAnimation(path, recorded, nil, d); err != nil {
			return err
		}
		log.Info("animation written", zap.String("path", path), zap.Int("frames", len(recorded)))
		fmt.Printf("wrote %d frames to %s\n", len(recorded), path)
		return nil
	}

	if err := os.MkdirAll(outPath, 0755); err != nil {
		return err
	}
	for i, fr := range recorded {
		path := filepath.Join(outPath, fmt.Sprintf("frame-%04d.%s", i+1, f))
		if braille {
			err = os.WriteFile(path, []byte(export.BrailleSVG(fr, viz.DefaultPixelsPerDot, 2)), 0644)
		} else {
			err = export.WriteFile(path, fr, nil)
		}
		if err != nil {
			return err
		}
		log.Debug("frame written", zap.String("path", path), zap.Int("segments", fr.SegmentCount()))
	}
	fmt.Printf("wrote %d %s frames to %s\n", len(recorded), f, outPath)
	return nil
}

// discard is a surface that draws nothing, so benchmarks time only the field
// and the extraction.
type discard struct{}

func (discard) Clear(render.FrameInfo) {}
func (discard) Stroke(contour.Layer)   {}

var benchViewports = [][2]int{{640, 360}, {1280, 720}, {1920, 1080}}

func runBench(cmd *cobra.Command, args []string) error {
	opts, err := rendererOptions(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("frames")
	if n < 1 {
		return fmt.Errorf("frames must be positive, got %d", n)
	}
	if realtime {
		return benchRealtime(opts, n)
	}

	fmt.Printf("benchmarking %d frames per viewport\n\n", n)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWPORT\tGRID\tSEGMENTS\tTIME\tMS/FRAME\tMAX FPS")

	var frameMS []float64
	for _, vp := range benchViewports {
		sched := render.NewManualScheduler()
		win := render.NewWindow(vp[0], vp[1])
		r := render.New(render.Host{Surface: discard{}, Scheduler: sched, Viewport: win, Events: win}, opts)
		if err := r.Mount(); err != nil {
			return err
		}

		interval := r.Options().FrameInterval()
		frameMS = frameMS[:0]
		start := time.Now()
		for i := 0; i < n; i++ {
			t := time.Now()
			sched.Advance(interval)
			frameMS = append(frameMS, float64(time.Since(t).Microseconds())/1000)
		}
		elapsed := time.Since(start)
		r.Unmount()

		st := r.Stats()
		per := elapsed / time.Duration(n)
		fmt.Fprintf(w, "%dx%d\t%dx%d\t%d\t%v\t%.2f\t%.1f\n",
			vp[0], vp[1], st.Cols, st.Rows, st.Segments,
			elapsed.Round(time.Millisecond), float64(per.Microseconds())/1000, float64(time.Second)/float64(per))
	}
	w.Flush()

	if len(frameMS) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(frameMS,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("ms per frame at %dx%d", benchViewports[len(benchViewports)-1][0], benchViewports[len(benchViewports)-1][1])),
		))
	}
	return nil
}

// benchRealtime runs the throttled loop against the wall clock for as long as
// n frames should take and reports how many were drawn or skipped.
func benchRealtime(opts render.Options, n int) error {
	sched := render.NewTickerScheduler(render.DefaultTickRate)
	win := render.NewWindow(1280, 720)
	r := render.New(render.Host{Surface: discard{}, Scheduler: sched, Viewport: win, Events: win}, opts)
	if err := r.Mount(); err != nil {
		return err
	}

	budget := time.Duration(n) * r.Options().FrameInterval()
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	start := time.Now()
	err := sched.Run(ctx)
	elapsed := time.Since(start)
	r.Unmount()
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	st := r.Stats()
	fmt.Printf("target:  %d fps over %v\n", r.Options().TargetFPS, budget)
	fmt.Printf("drawn:   %d\n", st.Drawn)
	fmt.Printf("skipped: %d\n", st.Skipped)
	fmt.Printf("actual:  %.1f fps\n", float64(st.Drawn)/elapsed.Seconds())
	return nil
}
