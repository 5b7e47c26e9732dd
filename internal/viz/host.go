package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/decision-labs/contour/internal/logger"
	"github.com/decision-labs/contour/internal/render"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 34
	historyCapacity = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Host is the terminal page the background is mounted on. It is the renderer's
// scheduler, viewport and resize source: frame callbacks run inside Update on
// each tick, so the renderer only ever sees bubbletea's single goroutine.
type Host struct {
	canvas   *Canvas
	window   *render.Window
	sched    *render.ManualScheduler
	renderer *render.Renderer

	theme     Theme
	paused    bool
	showHelp  bool
	showPanel bool
	start     time.Time
	elapsed   time.Duration
	frameCost time.Duration
	lastDrawn uint64
	segments  []float64
	log       *zap.Logger
}

// NewHost builds the terminal host and mounts a renderer on it.
func NewHost(opts render.Options, theme string) (*Host, error) {
	h := &Host{
		canvas:    NewCanvas(defaultWidth-panelWidth, defaultHeight),
		sched:     render.NewManualScheduler(),
		theme:     GetTheme(theme),
		showPanel: true,
		segments:  make([]float64, 0, historyCapacity),
		log:       logger.Named("viz"),
	}
	h.window = render.NewWindow(h.canvas.ViewportSize())

	h.renderer = render.New(render.Host{
		Surface:   h.canvas,
		Scheduler: h,
		Viewport:  h.window,
		Events:    h.window,
	}, opts)
	if err := h.renderer.Mount(); err != nil {
		return nil, err
	}
	return h, nil
}

// RequestFrame implements render.Scheduler; the callback runs on the next tick.
func (h *Host) RequestFrame(fn render.FrameFunc) render.FrameID { return h.sched.RequestFrame(fn) }

// CancelFrame implements render.Scheduler.
func (h *Host) CancelFrame(id render.FrameID) { h.sched.CancelFrame(id) }

// Renderer exposes the mounted renderer.
func (h *Host) Renderer() *render.Renderer { return h.renderer }

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (h *Host) Init() tea.Cmd {
	h.start = time.Now()
	return tick()
}

// Update handles input, resizes and frame ticks.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			h.renderer.Unmount()
			return h, tea.Quit
		case " ":
			h.paused = !h.paused
		case "t":
			h.theme = NextTheme(h.theme)
		case "p":
			h.showPanel = !h.showPanel
			h.resize(h.termSize())
		case "?":
			h.showHelp = !h.showHelp
		}
	case tea.WindowSizeMsg:
		h.resize(msg.Width, msg.Height)
	case TickMsg:
		h.advance(time.Time(msg))
		return h, tick()
	}
	return h, nil
}

// advance delivers pending frames. While paused the host clock is frozen, so
// the renderer neither draws nor advances its animation time.
func (h *Host) advance(now time.Time) {
	delta := now.Sub(h.start) - h.elapsed
	if h.paused {
		h.start = h.start.Add(delta)
		return
	}
	h.elapsed += delta

	began := time.Now()
	h.sched.Advance(delta)

	st := h.renderer.Stats()
	if st.Drawn != h.lastDrawn {
		h.lastDrawn = st.Drawn
		h.frameCost = time.Since(began)
		h.segments = append(h.segments, float64(st.Segments))
		if len(h.segments) > historyCapacity {
			h.segments = h.segments[1:]
		}
	}
}

func (h *Host) termSize() (int, int) {
	w := h.canvas.Width + 2
	if h.showPanel {
		w += panelWidth
	}
	return w, h.canvas.Height
}

func (h *Host) resize(width, height int) {
	cw := width - 2
	if h.showPanel {
		cw -= panelWidth
	}
	h.canvas.Resize(cw, height)
	h.window.Resize(h.canvas.ViewportSize())
	h.log.Debug("resized", zap.Int("cols", h.canvas.Width), zap.Int("rows", h.canvas.Height))
}

// View renders the canvas and the status panel.
func (h *Host) View() string {
	if h.showHelp {
		return helpText
	}
	canvasView := canvasStyle.Render(h.canvas.Render(h.theme))
	if !h.showPanel {
		return canvasView
	}

	st := h.renderer.Stats()
	header := lipgloss.NewStyle().Foreground(h.theme.Accent).Bold(true).MarginBottom(1)

	var s strings.Builder
	s.WriteString(header.Render("CONTOURS") + "\n")
	status := strings.ToUpper(st.State.String())
	if h.paused {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	opts := h.renderer.Options()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Target", fmt.Sprintf("%d fps", opts.TargetFPS))
	row("Drawn", fmt.Sprintf("%d", st.Drawn))
	row("Skipped", fmt.Sprintf("%d", st.Skipped))
	row("Clock", fmt.Sprintf("%.3f", st.Time))
	row("Grid", fmt.Sprintf("%dx%d", st.Cols, st.Rows))
	row("Segments", fmt.Sprintf("%d", st.Segments))
	row("Frame", h.frameCost.Round(10*time.Microsecond).String())
	row("Theme", h.theme.Name)

	if len(h.segments) > 1 {
		chart := asciigraph.Plot(h.segments, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("segments"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause T:Theme P:Panel\n?:Help   Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  T        - Cycle themes             ║
║  P        - Toggle status panel      ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run mounts the background in the terminal and blocks until the user quits.
func Run(opts render.Options, theme string) error {
	h, err := NewHost(opts, theme)
	if err != nil {
		return err
	}
	defer h.renderer.Unmount()

	_, err = tea.NewProgram(h, tea.WithAltScreen()).Run()
	return err
}
