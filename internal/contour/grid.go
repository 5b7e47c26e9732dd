package contour

import (
	"math"

	"github.com/decision-labs/contour/internal/noise"
)

// HeightMap is a row-major grid of field values in [0, 1].
type HeightMap struct {
	Rows, Cols int
	Values     []float64
}

// NewHeightMap allocates a zeroed rows x cols map.
func NewHeightMap(rows, cols int) HeightMap {
	return HeightMap{Rows: rows, Cols: cols, Values: make([]float64, rows*cols)}
}

// At returns the value at (row, col).
func (h HeightMap) At(row, col int) float64 {
	return h.Values[row*h.Cols+col]
}

// Set stores v at (row, col).
func (h HeightMap) Set(row, col int, v float64) {
	h.Values[row*h.Cols+col] = v
}

// GridSize derives the sample grid for a viewport. The grid always covers the
// viewport edge to edge and is never smaller than 1x1.
func GridSize(width, height int, cellSize float64) (rows, cols int) {
	if cellSize <= 0 || math.IsNaN(cellSize) {
		cellSize = 1
	}
	rows = dim(height, cellSize)
	cols = dim(width, cellSize)
	return rows, cols
}

func dim(px int, cellSize float64) int {
	if px < 0 {
		px = 0
	}
	n := int(math.Ceil(float64(px)/cellSize)) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// Levels returns n thresholds evenly spaced in [0, 1): 0, 1/n, ..., (n-1)/n.
func Levels(n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n)
	}
	return out
}

// BuildHeightMap samples field over a rows x cols grid. Grid position (r, c) maps
// to field coordinates (c*cellSize*scale, r*cellSize*scale, t).
func BuildHeightMap(field noise.Field, rows, cols int, cellSize, scale, t float64, octaves int) HeightMap {
	hm := NewHeightMap(rows, cols)
	step := cellSize * scale
	for r := 0; r < rows; r++ {
		y := float64(r) * step
		row := hm.Values[r*cols : (r+1)*cols]
		for c := range row {
			row[c] = field.Fractal3D(float64(c)*step, y, t, octaves)
		}
	}
	return hm
}
