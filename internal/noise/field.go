package noise

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned by New for an unsupported field kind.
var ErrUnknownField = errors.New("noise: unknown field kind")

// Field kinds accepted by New.
const (
	KindPerlin  = "perlin"
	KindSimplex = "simplex"
)

// Field is a deterministic fractal scalar field with values in [0, 1].
type Field interface {
	Fractal3D(x, y, z float64, octaves int) float64
}

// New builds the field named by kind. An empty kind means perlin.
func New(kind string, seed int64) (Field, error) {
	switch kind {
	case "", KindPerlin:
		return NewPerlin(seed), nil
	case KindSimplex:
		return NewSimplex(seed, 0.5), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, kind)
	}
}

// Kinds lists the supported field kinds.
func Kinds() []string {
	return []string{KindPerlin, KindSimplex}
}
