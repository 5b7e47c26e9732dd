package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/decision-labs/contour/internal/contour"
)

// DefaultBackground is the page colour contours are composited over.
var DefaultBackground = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}

// Rasterize strokes every layer of f onto a new image. Each segment becomes a
// quad of the layer's width; a layer is filled in one pass so overlapping quads
// do not darken each other.
func Rasterize(f contour.Frame, bg color.Color) *image.RGBA {
	w, h := f.Width, f.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg == nil {
		bg = DefaultBackground
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	for _, l := range f.Layers {
		if len(l.Segments) == 0 {
			continue
		}
		z.Reset(w, h)
		hw := l.Style.Width / 2
		for _, s := range l.Segments {
			strokeQuad(z, s, hw)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(strokeColor(l.Style)), image.Point{})
	}
	return img
}

func strokeColor(s contour.Style) color.NRGBA {
	a := math.Max(0, math.Min(1, s.Alpha))
	return color.NRGBA{R: s.R, G: s.G, B: s.B, A: uint8(math.Round(a * 255))}
}

// strokeQuad adds the rectangle around s. The normal is always the segment
// direction rotated left, so every quad winds the same way.
func strokeQuad(z *vector.Rasterizer, s contour.Segment, hw float64) {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	n := math.Hypot(dx, dy)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return
	}
	nx, ny := -dy/n*hw, dx/n*hw

	z.MoveTo(float32(s.X1+nx), float32(s.Y1+ny))
	z.LineTo(float32(s.X2+nx), float32(s.Y2+ny))
	z.LineTo(float32(s.X2-nx), float32(s.Y2-ny))
	z.LineTo(float32(s.X1-nx), float32(s.Y1-ny))
	z.ClosePath()
}
