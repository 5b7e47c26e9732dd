package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/decision-labs/contour/internal/contour"
	"github.com/decision-labs/contour/internal/render"
	"github.com/decision-labs/contour/internal/viz"
)

// SegmentsToSVG renders a frame as one stroked path per level.
func SegmentsToSVG(f contour.Frame, background string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, f.Width, f.Height, f.Width, f.Height))
	if background != "" {
		sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, background))
	}
	sb.WriteString(`<g fill="none" stroke-linecap="round" stroke-linejoin="round" stroke-miterlimit="10">
`)

	for _, l := range f.Layers {
		if len(l.Segments) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path data-level="%d" stroke="%s" stroke-opacity="%s" stroke-width="%s" d="`,
			l.Level, l.Style.Hex(), num(l.Style.Alpha), num(l.Style.Width)))
		for i, s := range l.Segments {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString("M")
			sb.WriteString(num(s.X1))
			sb.WriteByte(',')
			sb.WriteString(num(s.Y1))
			sb.WriteString("L")
			sb.WriteString(num(s.X2))
			sb.WriteByte(',')
			sb.WriteString(num(s.Y2))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// num prints v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#b4becd">
`, width, height, width, height))

	dotRadius := scale * 0.4
	dw, dh := canvas.DotSize()
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// BrailleSVG strokes f onto a braille canvas, as the terminal host would show
// it, and converts the dots to SVG.
func BrailleSVG(f contour.Frame, pixelsPerDot, scale float64) string {
	if pixelsPerDot <= 0 || math.IsNaN(pixelsPerDot) {
		pixelsPerDot = viz.DefaultPixelsPerDot
	}
	cols := int(math.Ceil(float64(f.Width) / pixelsPerDot / 2))
	rows := int(math.Ceil(float64(f.Height) / pixelsPerDot / 4))

	canvas := viz.NewCanvas(cols, rows)
	canvas.PixelsPerDot = pixelsPerDot
	canvas.Clear(render.FrameInfo{Width: f.Width, Height: f.Height, Time: f.Time})
	for _, l := range f.Layers {
		canvas.Stroke(l)
	}
	return CanvasToSVG(canvas, scale)
}
