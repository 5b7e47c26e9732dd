// Package contour turns a sampled scalar field into iso-lines with marching squares.
//
// A [HeightMap] covers the viewport on a grid sized by [GridSize]; [Extract] walks its
// cells for one threshold from [Levels] and emits pixel-space [Segment]s. Edge
// crossings go through an [Interpolator]: [EdgeParam] eases the linear crossing with
// smoothstep, [LinearEdgeParam] keeps it exact.
//
// # Case table
//
// Corner bits are 1 top-left, 2 top-right, 4 bottom-left, 8 bottom-right. Cases 0 and
// 15 emit nothing. The saddles emit two segments: case 6 joins top-left and
// bottom-right edges, case 9 joins right-top and left-bottom.
package contour
