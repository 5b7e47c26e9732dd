package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/decision-labs/contour/internal/contour"
	"github.com/decision-labs/contour/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// DefaultPixelsPerDot is how many viewport pixels one braille dot stands for.
const DefaultPixelsPerDot = 8.0

// Canvas is a braille dot canvas. It implements render.Surface: segments arrive in
// viewport pixels and are scaled down by PixelsPerDot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Major marks cells touched by a major contour so they can be highlighted.
	Major        [][]bool
	PixelsPerDot float64
}

var _ render.Surface = (*Canvas)(nil)

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{PixelsPerDot: DefaultPixelsPerDot}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid for a new character size and blanks it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Major = make([][]bool, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Major[i] = make([]bool, w)
	}
	c.Reset()
}

// DotSize is the canvas size in sub-pixel dots.
func (c *Canvas) DotSize() (int, int) { return c.Width * 2, c.Height * 4 }

// ViewportSize is the pixel viewport the canvas represents.
func (c *Canvas) ViewportSize() (int, int) {
	dw, dh := c.DotSize()
	return int(float64(dw) * c.PixelsPerDot), int(float64(dh) * c.PixelsPerDot)
}

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Reset blanks every cell.
func (c *Canvas) Reset() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Major[i][j] = false
		}
	}
}

// Clear implements render.Surface.
func (c *Canvas) Clear(render.FrameInfo) { c.Reset() }

// Stroke implements render.Surface.
func (c *Canvas) Stroke(layer contour.Layer) {
	k := c.PixelsPerDot
	if k <= 0 {
		k = 1
	}
	for _, s := range layer.Segments {
		x0, y0 := int(math.Floor(s.X1/k)), int(math.Floor(s.Y1/k))
		x1, y1 := int(math.Floor(s.X2/k)), int(math.Floor(s.Y2/k))
		c.DrawLine(x0, y0, x1, y1)
		if layer.Style.Major {
			c.markMajor(x0, y0)
			c.markMajor(x1, y1)
		}
	}
}

func (c *Canvas) markMajor(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Major[y/4][x/2] = true
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colours the canvas with the theme, highlighting major contours.
func (c *Canvas) Render(t Theme) string {
	minor := lipgloss.NewStyle().Foreground(t.Minor)
	major := lipgloss.NewStyle().Foreground(t.Major)

	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Major[i][j] == c.Major[i][start] {
				continue
			}
			style := minor
			if c.Major[i][start] {
				style = major
			}
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
