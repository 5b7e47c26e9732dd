package contour

import "math"

// Segment is a contour line piece in pixel space.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Interpolator returns where along an edge with endpoint values a and b the
// field crosses th, as a parameter in [0, 1].
type Interpolator func(a, b, th float64) float64

// EdgeParam is the default interpolator: the linear crossing clamped to [0, 1]
// and eased with smoothstep, which slightly rounds contour corners. A flat edge
// (a == b) yields the midpoint.
func EdgeParam(a, b, th float64) float64 {
	t := LinearEdgeParam(a, b, th)
	return t * t * (3 - 2*t)
}

// LinearEdgeParam is the geometrically exact crossing, clamped to [0, 1].
func LinearEdgeParam(a, b, th float64) float64 {
	if b == a {
		return 0.5
	}
	t := (th - a) / (b - a)
	switch {
	case math.IsNaN(t):
		return 0.5
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// CaseIndex packs which corners lie strictly above th:
// bit 0 top-left, bit 1 top-right, bit 2 bottom-left, bit 3 bottom-right.
func CaseIndex(v00, v10, v01, v11, th float64) int {
	ci := 0
	if v00 > th {
		ci |= 1
	}
	if v10 > th {
		ci |= 2
	}
	if v01 > th {
		ci |= 4
	}
	if v11 > th {
		ci |= 8
	}
	return ci
}

type edge uint8

const (
	edgeTop edge = iota
	edgeBottom
	edgeLeft
	edgeRight
)

// caseEdges lists, per case index, the edge pairs joined by a segment.
// Saddles 6 and 9 join two disjoint pairs.
var caseEdges = [16][][2]edge{
	0:  nil,
	1:  {{edgeLeft, edgeTop}},
	2:  {{edgeTop, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeBottom, edgeLeft}},
	5:  {{edgeBottom, edgeTop}},
	6:  {{edgeTop, edgeLeft}, {edgeBottom, edgeRight}},
	7:  {{edgeBottom, edgeRight}},
	8:  {{edgeRight, edgeBottom}},
	9:  {{edgeRight, edgeTop}, {edgeLeft, edgeBottom}},
	10: {{edgeTop, edgeBottom}},
	11: {{edgeRight, edgeBottom}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeTop, edgeRight}},
	14: {{edgeLeft, edgeTop}},
	15: nil,
}

// SegmentCount reports how many segments a cell with case index ci emits.
func SegmentCount(ci int) int {
	if ci < 0 || ci > 15 {
		return 0
	}
	return len(caseEdges[ci])
}

// CellSegments returns the segments for the cell whose top-left pixel is (x, y).
// A nil interp means EdgeParam.
func CellSegments(x, y, size, v00, v10, v01, v11, th float64, interp Interpolator) []Segment {
	return appendCell(nil, x, y, size, v00, v10, v01, v11, th, interp)
}

func appendCell(dst []Segment, x, y, size, v00, v10, v01, v11, th float64, interp Interpolator) []Segment {
	pairs := caseEdges[CaseIndex(v00, v10, v01, v11, th)]
	if len(pairs) == 0 {
		return dst
	}
	if interp == nil {
		interp = EdgeParam
	}

	var pts [4][2]float64
	pts[edgeTop] = [2]float64{x + interp(v00, v10, th)*size, y}
	pts[edgeBottom] = [2]float64{x + interp(v01, v11, th)*size, y + size}
	pts[edgeLeft] = [2]float64{x, y + interp(v00, v01, th)*size}
	pts[edgeRight] = [2]float64{x + size, y + interp(v10, v11, th)*size}

	for _, p := range pairs {
		a, b := pts[p[0]], pts[p[1]]
		dst = append(dst, Segment{X1: a[0], Y1: a[1], X2: b[0], Y2: b[1]})
	}
	return dst
}

// Extract runs marching squares over every cell of hm at threshold th.
func Extract(hm HeightMap, th, cellSize float64, interp Interpolator) []Segment {
	return AppendExtract(nil, hm, th, cellSize, interp)
}

// AppendExtract is Extract appending into dst, so callers can reuse a buffer across frames.
func AppendExtract(dst []Segment, hm HeightMap, th, cellSize float64, interp Interpolator) []Segment {
	for r := 0; r < hm.Rows-1; r++ {
		py := float64(r) * cellSize
		for c := 0; c < hm.Cols-1; c++ {
			dst = appendCell(dst, float64(c)*cellSize, py, cellSize,
				hm.At(r, c), hm.At(r, c+1), hm.At(r+1, c), hm.At(r+1, c+1),
				th, interp)
		}
	}
	return dst
}
