package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Simplex is an OpenSimplex-backed alternative to Perlin, normalised so that each
// octave already lies in [0, 1).
type Simplex struct {
	Persistence float64
	Seed        int64
	os          opensimplex.Noise
}

// NewSimplex returns a Simplex field. Persistence outside (0, 1] falls back to 0.5.
func NewSimplex(seed int64, persistence float64) *Simplex {
	if persistence <= 0 || persistence > 1 {
		persistence = 0.5
	}
	s := NormalizeSeed(seed)
	return &Simplex{
		Persistence: persistence,
		Seed:        s,
		os:          opensimplex.NewNormalized(s),
	}
}

// Fractal3D returns the amplitude-weighted mean of octaves in [0, 1].
func (s *Simplex) Fractal3D(x, y, z float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, sumOfAmplitudes float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += amp * s.os.Eval3(x*freq, y*freq, z*freq)
		sumOfAmplitudes += amp
		amp *= s.Persistence
		freq *= 2
	}
	return unit(sum / sumOfAmplitudes)
}
