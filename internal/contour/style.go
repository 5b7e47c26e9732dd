package contour

import "fmt"

// MajorEvery marks every n-th level as a major contour.
const MajorEvery = 4

// Style is how one level is stroked.
type Style struct {
	Width   float64
	R, G, B uint8
	Alpha   float64
	Major   bool
}

var (
	majorStyle = Style{Width: 1.8, R: 180, G: 190, B: 205, Alpha: 0.18, Major: true}
	minorStyle = Style{Width: 1.0, R: 200, G: 210, B: 220, Alpha: 0.12}
)

// StyleFor returns the stroke style for level index i.
func StyleFor(i int) Style {
	if i%MajorEvery == 0 {
		return majorStyle
	}
	return minorStyle
}

// RGBA formats the colour as a CSS rgba() value.
func (s Style) RGBA() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", s.R, s.G, s.B, s.Alpha)
}

// Hex formats the colour as #rrggbb, dropping alpha.
func (s Style) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", s.R, s.G, s.B)
}

// Layer is the set of segments drawn for one threshold.
type Layer struct {
	Level     int
	Threshold float64
	Style     Style
	Segments  []Segment
}

// Frame is one fully extracted picture.
type Frame struct {
	Width, Height int
	Time          float64
	Layers        []Layer
}

// SegmentCount totals segments across layers.
func (f Frame) SegmentCount() int {
	n := 0
	for _, l := range f.Layers {
		n += len(l.Segments)
	}
	return n
}
